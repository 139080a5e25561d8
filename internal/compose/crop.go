package compose

import (
	"image"
	"math"
)

// cropRect returns the centered sub-rectangle of a srcW x srcH image whose
// aspect ratio matches dstW:dstH (the smart crop). When the source is
// relatively wider than the target its width is cropped; when relatively
// taller its height is cropped. The result never exceeds the source bounds,
// so the subsequent resize only ever fills, never distorts.
func cropRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	srcRatio := float64(srcW) / float64(srcH)
	dstRatio := float64(dstW) / float64(dstH)

	if srcRatio > dstRatio {
		cropW := int(math.Round(float64(srcH) * dstRatio))
		if cropW > srcW {
			cropW = srcW
		}
		x := (srcW - cropW) / 2
		return image.Rect(x, 0, x+cropW, srcH)
	}

	cropH := int(math.Round(float64(srcW) / dstRatio))
	if cropH > srcH {
		cropH = srcH
	}
	y := (srcH - cropH) / 2
	return image.Rect(0, y, srcW, y+cropH)
}

// fitRect returns the largest rectangle with the source's aspect ratio that
// fits inside dstW x dstH, centered. Used by the single layout to letterbox
// rather than crop.
func fitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 {
		return image.Rect(0, 0, 0, 0)
	}
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w := max(1, int(math.Round(float64(srcW)*scale)))
	h := max(1, int(math.Round(float64(srcH)*scale)))
	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
