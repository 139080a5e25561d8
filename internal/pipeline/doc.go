// Package pipeline orchestrates a full run: image discovery, duration
// probing, job construction, parallel frame compositing, encoder
// invocation, cleanup, and the summary report.
package pipeline
