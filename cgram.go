// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"image"

	"golang.org/x/image/draw"
)

// Glyph dimensions for the 5x8 character cell.
const (
	GlyphWidth  = 5
	GlyphHeight = 8
)

// Glyph is a 5x8 CGRAM character bitmap, one row per byte. Only the low 5
// bits of each row are used, bit 4 being the leftmost column.
type Glyph [GlyphHeight]byte

// CreateChar stores a custom character in one of the eight CGRAM slots.
// Slots above 7 wrap around. The character is displayed by writing the
// slot number as a data byte.
//
// The chip is left addressing CGRAM afterwards; call SetCursorPos before
// writing text.
func (lcd *HD44780) CreateChar(slot byte, glyph Glyph) error {
	slot &= 0x07
	if err := lcd.writeCommand(cmdSetCGRAMAddr | slot<<3); err != nil {
		return err
	}
	for _, row := range glyph {
		if err := lcd.WriteByte(row & 0x1f); err != nil {
			return err
		}
	}
	return nil
}

// GlyphFromImage converts an image into a Glyph. Images that are not
// already 5x8 are scaled first. A pixel is lit when its luminance is below
// half scale, so dark ink on a light background comes out as drawn.
func GlyphFromImage(img image.Image) Glyph {
	b := img.Bounds()
	if b.Dx() != GlyphWidth || b.Dy() != GlyphHeight {
		scaled := image.NewGray(image.Rect(0, 0, GlyphWidth, GlyphHeight))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
		b = scaled.Bounds()
	}
	var g Glyph
	for y := 0; y < GlyphHeight; y++ {
		var row byte
		for x := 0; x < GlyphWidth; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 601 luma, 16 bit channels.
			luma := (299*r + 587*gr + 114*bl) / 1000
			if luma < 0x8000 {
				row |= 1 << (GlyphWidth - 1 - x)
			}
		}
		g[y] = row
	}
	return g
}
