package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/MeKo-Tech/noisefield/internal/noise"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatPNG, FormatTIFF}

// FormatFromPath picks a format from the file extension, falling back to png.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return FormatTIFF
	}
	return FormatPNG
}

// Encode writes img to w in format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return noise.CheckOption("format", format, Formats)
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, format string) error {
	if err := noise.CheckOption("format", format, Formats); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return nil
}
