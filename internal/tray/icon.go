package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const iconSize = 32

var (
	iconOnce sync.Once
	iconData []byte
)

// Icon returns the tray icon: a stick ring with the knob pushed up.
func Icon() []byte {
	iconOnce.Do(func() {
		iconData = renderIcon()
	})
	return iconData
}

func renderIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	ring := color.NRGBA{R: 0x3a, G: 0x86, B: 0xff, A: 0xff}
	knob := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	c := float64(iconSize-1) / 2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d := dx*dx + dy*dy
			if d <= c*c && d >= (c-3)*(c-3) {
				img.SetNRGBA(x, y, ring)
			}
			ky := dy + c/2
			if dx*dx+ky*ky <= 25 {
				img.SetNRGBA(x, y, knob)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
