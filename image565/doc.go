// Package image565 provides the RGB565 color type and pixel buffer used by the
// ILI9341 display controller.
//
// The controller consumes 16 bits per pixel: 5 bits red, 6 bits green and 5
// bits blue, most significant bit first on the wire.
//
//	bit:  15 .. 11 | 10 .. 5 | 4 .. 0
//	      r4 .. r0 | g5 .. g0| b4 .. b0
//
// Pixels are stored one uint16 per cell in row-major order so a whole buffer
// can be streamed to the panel without conversion.
//
// This package provides:
//
// - Color: a packed RGB565 value, built with RGB or RGBA
// - Model: a color model converting standard Go colors to Color
// - Image: a draw.Image backed by []uint16, sized to the panel orientation
//
// Example usage:
//
//	img, err := image565.New(image.Rect(0, 0, 240, 320))
//	if err != nil {
//		// Not enough memory for this size; retry smaller or skip the frame.
//	}
//	defer img.Release()
//
//	img.Fill(image565.RGB(0, 0, 0x40))
//	img.SetRGB565(10, 20, image565.RGB(0xFF, 0xFF, 0xFF))
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image565
