// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploader_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads/")
	ctx := context.Background()

	url, err := u.Upload(ctx, "quotes", "Sofá da Sala.JPG", &Image{Data: []byte("jpeg-bytes"), Ext: ".jpg"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/quotes/"), url)
	assert.True(t, strings.HasSuffix(url, "-sofa-da-sala.jpg"), url)

	path := filepath.Join(dir, "quotes", filepath.Base(url))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, u.Delete(ctx, url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, u.Delete(ctx, url))
}

func TestLocalUploader_RejectsTraversal(t *testing.T) {
	u := NewLocalUploader(t.TempDir(), "/uploads")
	ctx := context.Background()

	_, err := u.Upload(ctx, "../outside", "a.jpg", &Image{Data: []byte("x"), Ext: ".jpg"})
	assert.Error(t, err)

	assert.Error(t, u.Delete(ctx, "/uploads/../../etc/passwd"))
	assert.Error(t, u.Delete(ctx, "https://example.com/a.jpg"))
}

func TestObjectName_EmptyBase(t *testing.T) {
	name := objectName("!!!.png")
	assert.True(t, strings.HasSuffix(name, "-foto"), name)
}

func TestCloudinaryPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/estofamais/quotes/ab12-sofa.jpg", "estofamais/quotes/ab12-sofa"},
		{"https://res.cloudinary.com/demo/image/upload/estofamais/quotes/x.png", "estofamais/quotes/x"},
		{"https://res.cloudinary.com/demo/image/upload/velvet/x.png", "velvet/x"},
		{"https://example.com/a.jpg", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cloudinaryPublicID(tt.url), tt.url)
	}
}
