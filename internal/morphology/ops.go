package morphology

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// DilateGray returns the grey-level dilation (local maximum) of img.
func DilateGray(img *image.Gray, se StructuringElement) *image.Gray {
	if se.Shape == ShapeSquare {
		if se.Size <= 1 {
			return cloneGray(img)
		}
		return redChannel(effect.Dilate(img, se.bildRadius()))
	}
	return footprintFilter(img, se, true)
}

// ErodeGray returns the grey-level erosion (local minimum) of img.
func ErodeGray(img *image.Gray, se StructuringElement) *image.Gray {
	if se.Shape == ShapeSquare {
		if se.Size <= 1 {
			return cloneGray(img)
		}
		return redChannel(effect.Erode(img, se.bildRadius()))
	}
	return footprintFilter(img, se, false)
}

// CloseGray is DilateGray followed by ErodeGray with the same element.
func CloseGray(img *image.Gray, se StructuringElement) *image.Gray {
	return ErodeGray(DilateGray(img, se), se)
}

// Dilate grows the true regions of m by se.
func Dilate(m *Mask, se StructuringElement) *Mask {
	return MaskFromGray(DilateGray(m.ToGray(), se), 128)
}

// Erode shrinks the true regions of m by se.
func Erode(m *Mask, se StructuringElement) *Mask {
	return MaskFromGray(ErodeGray(m.ToGray(), se), 128)
}

// Close fills gaps narrower than se without growing the regions.
func Close(m *Mask, se StructuringElement) *Mask {
	return MaskFromGray(CloseGray(m.ToGray(), se), 128)
}

// footprintFilter computes the max (or min) of img under every placement
// of se. Offsets falling outside the image are skipped.
func footprintFilter(img *image.Gray, se StructuringElement, takeMax bool) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var best uint8
			if !takeMax {
				best = 255
			}
			for _, o := range se.Offsets {
				px, py := x+o.X, y+o.Y
				if px < 0 || py < 0 || px >= w || py >= h {
					continue
				}
				v := img.Pix[py*img.Stride+px]
				if takeMax && v > best {
					best = v
				} else if !takeMax && v < best {
					best = v
				}
			}
			dst.Pix[y*dst.Stride+x] = best
		}
	}
	return dst
}

// redChannel collapses bild's RGBA output back to a single channel.
// Inputs are gray so all three colour channels carry the same value.
func redChannel(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[y*src.Stride+x*4]
		}
	}
	return dst
}

func cloneGray(img *image.Gray) *image.Gray {
	dst := image.NewGray(img.Bounds())
	copy(dst.Pix, img.Pix)
	return dst
}
