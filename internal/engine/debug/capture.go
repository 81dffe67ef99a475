// Package debug provides capture utilities for the interactive client.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Image formats SavePixels can write.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ValidFormat reports whether SavePixels can write format.
func ValidFormat(format string) bool {
	return format == FormatPNG || format == FormatBMP
}

// Capture names and writes timestamped output files.
type Capture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewCapture creates a capture handler writing PNG screenshots to outputDir.
func NewCapture(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    FormatPNG,
		now:       time.Now,
	}
}

// SetFormat selects the screenshot image format.
func (c *Capture) SetFormat(format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("unsupported image format %q", format)
	}
	c.format = format
	return nil
}

// Filename returns the path for a capture taken now with the given extension.
func (c *Capture) Filename(ext string) string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", c.prefix, timestamp, ext)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}

// Create opens a new capture file, creating the output directory if needed.
func (c *Capture) Create(ext string) (*os.File, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(c.Filename(ext))
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	return f, nil
}

// FlipRows converts bottom-up RGBA rows, as OpenGL reads them, into an image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// SavePixels writes a screenshot from raw framebuffer pixels and returns its
// path.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}

	file, err := c.Create(c.format)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if c.format == FormatBMP {
		err = bmp.Encode(file, img)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return file.Name(), nil
}
