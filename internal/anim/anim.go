// Package anim assembles bug-walk snapshots into an animated PNG.
package anim

import (
	"fmt"
	"image"

	"github.com/setanarut/apng"

	"github.com/san-kum/colorfield/internal/grid"
	"github.com/san-kum/colorfield/internal/render"
)

// DefaultDelay is the per-frame delay in hundredths of a second.
const DefaultDelay = 7

// Save writes one APNG frame per snapshot. Frames are upscaled with
// nearest-neighbor sampling when scale > 1.
func Save(path string, snaps []*grid.Grid, scale, delay int) error {
	if len(snaps) == 0 {
		return fmt.Errorf("anim: no snapshots to save")
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	frames := make([]image.Image, len(snaps))
	for i, s := range snaps {
		img := render.Image(s)
		if scale > 1 {
			scaled, err := render.Scale(img, s.W()*scale, s.H()*scale)
			if err != nil {
				return err
			}
			frames[i] = scaled
			continue
		}
		frames[i] = img
	}

	return apng.Save(path, frames, uint16(delay))
}
