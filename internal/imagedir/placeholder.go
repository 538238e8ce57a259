package imagedir

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const placeholderSize = 64

var (
	placeholderOnce sync.Once
	placeholderPNG  []byte
)

// Placeholder returns a small neutral-gray PNG served for nodes whose image
// file is missing from disk. The bytes are generated once and reused.
func Placeholder() []byte {
	placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
		fill := color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
		border := color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

		for y := 0; y < placeholderSize; y++ {
			for x := 0; x < placeholderSize; x++ {
				if x == 0 || y == 0 || x == placeholderSize-1 || y == placeholderSize-1 {
					img.Set(x, y, border)
				} else {
					img.Set(x, y, fill)
				}
			}
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			// Encoding a fixed in-memory image cannot fail at runtime.
			panic(err)
		}
		placeholderPNG = buf.Bytes()
	})

	return placeholderPNG
}
