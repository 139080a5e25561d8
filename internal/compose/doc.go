// Package compose renders frame artifacts from source images: decoding,
// aspect-aware crop/resize, band stacking, and JPEG output. It is the only
// package that touches pixel data.
package compose
