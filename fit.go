package launcher

import (
	"image"
	"math"
)

// Placement describes how an image is drawn into its layer box: the part of
// the source image that is visible and where it lands inside the box.
type Placement struct {
	// Box is the size of the layer box that transforms apply to.
	Box Vec2
	// Src is the visible region of the source image, in image pixels.
	Src Rect
	// Dst is where Src is drawn, in layer-box coordinates.
	Dst Rect
}

// Empty reports whether nothing would be drawn.
func (p Placement) Empty() bool {
	return p.Src.Width <= 0 || p.Src.Height <= 0 || p.Dst.Width <= 0 || p.Dst.Height <= 0
}

// FitPlacement computes the placement of an imgW x imgH image for a layer
// with the given fit inside a viewport of viewW x viewH, following
// object-fit: fill stretches, contain letterboxes, cover crops to the box
// and none keeps the natural size (the box is then the image itself).
func FitPlacement(fit Fit, imgW, imgH, viewW, viewH float64) Placement {
	full := Rect{Width: imgW, Height: imgH}
	if fit == FitNone || !fit.Valid() {
		return Placement{Box: Vec2{imgW, imgH}, Src: full, Dst: full}
	}
	box := Vec2{viewW, viewH}
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return Placement{Box: box}
	}
	switch fit {
	case FitContain:
		s := min(viewW/imgW, viewH/imgH)
		w, h := imgW*s, imgH*s
		return Placement{Box: box, Src: full, Dst: Rect{(viewW - w) / 2, (viewH - h) / 2, w, h}}
	case FitCover:
		s := max(viewW/imgW, viewH/imgH)
		sw, sh := viewW/s, viewH/s
		return Placement{
			Box: box,
			Src: Rect{(imgW - sw) / 2, (imgH - sh) / 2, sw, sh},
			Dst: Rect{Width: viewW, Height: viewH},
		}
	default: // fill
		return Placement{Box: box, Src: full, Dst: Rect{Width: viewW, Height: viewH}}
	}
}

// Matrix returns the affine mapping source-image pixels of p.Src (relative
// to its top-left) into layer-box coordinates.
func (p Placement) Matrix() [6]float64 {
	if p.Src.Width <= 0 || p.Src.Height <= 0 {
		return identityTransform
	}
	return multiplyAffine(
		translateMatrix(p.Dst.X, p.Dst.Y),
		scaleMatrix(p.Dst.Width/p.Src.Width, p.Dst.Height/p.Src.Height),
	)
}

// Crop returns the whole-pixel rectangle covering p.Src, clipped to an
// image of size w x h.
func (p Placement) Crop(w, h int) image.Rectangle {
	return image.Rect(
		int(math.Floor(p.Src.X)), int(math.Floor(p.Src.Y)),
		int(math.Ceil(p.Src.X+p.Src.Width)), int(math.Ceil(p.Src.Y+p.Src.Height)),
	).Intersect(image.Rect(0, 0, w, h))
}

// cropMatrix adjusts m, which expects coordinates relative to p.Src, to take
// pixels of a buffer holding crop with pad pixels of margin on every side.
func cropMatrix(m [6]float64, p Placement, crop image.Rectangle, pad int) [6]float64 {
	return multiplyAffine(m, translateMatrix(
		float64(crop.Min.X-pad)-p.Src.X,
		float64(crop.Min.Y-pad)-p.Src.Y,
	))
}
