// Package ansi renders card images as truecolor half-block terminal art.
package ansi

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Render converts an image to ANSI art of the given character dimensions.
// Each character cell covers two pixel rows using the upper half block, so
// the image is resampled to twice the requested height.
func Render(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder

	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := averageColor(
				colorAt(resized, x, y),
				colorAt(resized, x+1, y),
			)
			bottom := averageColor(
				colorAt(resized, x, y+1),
				colorAt(resized, x+1, y+1),
			)
			buffer.WriteString(cell(top, bottom))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns the color at a coordinate, black when out of bounds.
func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		c, _ := colorful.MakeColor(img.At(x, y))
		return c
	}
	return colorful.Color{}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// cell formats one half-block character with the top color as foreground
// and the bottom color as background.
func cell(top, bottom colorful.Color) string {
	fr, fg, fb, _ := toRGBA(top).RGBA()
	br, bg, bb, _ := toRGBA(bottom).RGBA()

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m",
		fr>>8, fg>>8, fb>>8, br>>8, bg>>8, bb>>8)
}

func toRGBA(c colorful.Color) color.Color {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

// StripEscapes removes ANSI escape sequences from a string
func StripEscapes(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Width returns the widest visible line of a block of ANSI art.
func Width(art string) int {
	widest := 0
	for _, line := range strings.Split(art, "\n") {
		if w := len([]rune(StripEscapes(line))); w > widest {
			widest = w
		}
	}
	return widest
}
