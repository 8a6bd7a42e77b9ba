// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_PNG(t *testing.T) {
	data := encodePNG(t, createTestImage(800, 600))

	img, err := Process(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, MimeTypePNG, img.MimeType)
	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, 800, img.Width)
	assert.Equal(t, 600, img.Height)

	thumb, err := jpeg.Decode(bytes.NewReader(img.Thumb))
	require.NoError(t, err)
	assert.Equal(t, ThumbWidth, thumb.Bounds().Dx())
	assert.Equal(t, ThumbHeight, thumb.Bounds().Dy())
}

func TestProcess_SmallImageNotUpscaled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, createTestImage(100, 50), nil))

	img, err := Process(&buf)
	require.NoError(t, err)
	assert.Equal(t, MimeTypeJPEG, img.MimeType)
	assert.Equal(t, ".jpg", img.Ext)

	thumb, err := jpeg.Decode(bytes.NewReader(img.Thumb))
	require.NoError(t, err)
	assert.Equal(t, 100, thumb.Bounds().Dx())
}

func TestProcess_Rejects(t *testing.T) {
	t.Run("not an image", func(t *testing.T) {
		_, err := Process(strings.NewReader("just some text"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("tiff", func(t *testing.T) {
		tiff := append([]byte("II*\x00"), make([]byte, 64)...)
		_, err := Process(bytes.NewReader(tiff))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Process(bytes.NewReader(make([]byte, MaxUploadSize+1)))
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestApplyOrientation(t *testing.T) {
	src := createTestImage(100, 50)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{1, 100, 50},
		{2, 100, 50},
		{3, 100, 50},
		{4, 100, 50},
		{5, 50, 100},
		{6, 50, 100},
		{7, 50, 100},
		{8, 50, 100},
		{0, 100, 50},
	}

	for _, tt := range tests {
		b := applyOrientation(src, tt.orientation).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("orientation %d: got %dx%d, want %dx%d",
				tt.orientation, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestReadExifOrientation_NoExif(t *testing.T) {
	data := encodePNG(t, createTestImage(10, 10))
	if got := readExifOrientation(bytes.NewReader(data)); got != 1 {
		t.Errorf("readExifOrientation() = %d, want 1", got)
	}
}

func TestFormatToMimeType(t *testing.T) {
	tests := map[string]string{
		"jpeg": MimeTypeJPEG,
		"png":  MimeTypePNG,
		"gif":  MimeTypeGIF,
		"webp": MimeTypeWebP,
		"":     MimeTypeJPEG,
	}
	for format, want := range tests {
		if got := formatToMimeType(format); got != want {
			t.Errorf("formatToMimeType(%q) = %q, want %q", format, got, want)
		}
	}
}
