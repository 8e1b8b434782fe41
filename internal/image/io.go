package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound is returned by Load when the file does not exist.
	ErrNotFound = errors.New("image not found")
	// ErrDecodeFailed is returned by Load when the file is not a decodable image.
	ErrDecodeFailed = errors.New("failed to decode image")
	// ErrWriteFailed is returned by Save when the destination cannot be written.
	ErrWriteFailed = errors.New("failed to write image")
	// ErrUnsupportedFormat is returned by Save for an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Format identifies an encoder.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

const jpegQuality = 95

// Load decodes the image at path into a new buffer.
func Load(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	buf, _, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Decode reads any registered image format from r.
func Decode(r io.Reader) (*Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return FromImage(img), format, nil
}

// Save encodes buf to path, choosing the format from the extension.
// The file is written to a temporary sibling and renamed into place, so a
// failed save never truncates an existing file.
func Save(buf *Buffer, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if buf.Empty() {
		return fmt.Errorf("%w: nothing to save", ErrWriteFailed)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Encode(tmp, buf, format); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *Buffer, format Format) error {
	img := buf.RGBA()
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// FormatFromPath maps a file extension to an encoder.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// OpenExtensions lists the extensions Load accepts.
func OpenExtensions() []string {
	return []string{".bmp", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".webp"}
}

// SaveExtensions lists the extensions Save accepts.
func SaveExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}
}

// IsSupportedFormat checks if the given path has a loadable image extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range OpenExtensions() {
		if ext == format {
			return true
		}
	}
	return false
}
