// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/olegiv/estofamais/internal/util"
)

// Uploader stores finished photos and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, name string, img *Image) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectName builds a unique, URL-safe file name from the original name.
func objectName(name string) string {
	base := util.Slugify(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if base == "" {
		base = "foto"
	}
	return uuid.NewString()[:8] + "-" + base
}

// LocalUploader writes photos below a directory served at BaseURL.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

// NewLocalUploader creates an uploader writing to dir, served under baseURL.
func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes the photo to Dir/folder/<name><ext>.
func (u *LocalUploader) Upload(_ context.Context, folder, name string, img *Image) (string, error) {
	file := objectName(name) + img.Ext

	dir, err := util.SafeJoinPath(u.Dir, folder)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	target, err := util.SafeJoinPath(dir, file)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(target, img.Data, 0o640); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return u.BaseURL + "/" + path.Join(folder, file), nil
}

// Delete removes a file previously returned by Upload.
func (u *LocalUploader) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, u.BaseURL+"/")
	if !ok {
		return fmt.Errorf("url %q is not a local upload", url)
	}
	target, err := util.SafeJoinPath(u.Dir, filepath.FromSlash(rel))
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

// CloudinaryUploader stores photos in a Cloudinary account.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	prefix string
}

// NewCloudinaryUploader creates an uploader from a cloudinary:// URL.
// All assets are placed below the prefix folder.
func NewCloudinaryUploader(cloudinaryURL, prefix string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, prefix: strings.Trim(prefix, "/")}, nil
}

// Upload sends the photo and returns its HTTPS URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, folder, name string, img *Image) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(img.Data), uploader.UploadParams{
		PublicID: objectName(name),
		Folder:   path.Join(u.prefix, folder),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Delete destroys the asset behind a URL returned by Upload.
func (u *CloudinaryUploader) Delete(ctx context.Context, url string) error {
	publicID := cloudinaryPublicID(url)
	if publicID == "" {
		return fmt.Errorf("url %q is not a cloudinary asset", url)
	}
	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

// cloudinaryPublicID extracts "folder/name" from
// https://res.cloudinary.com/<cloud>/image/upload/v123/folder/name.jpg.
func cloudinaryPublicID(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return ""
	}
	if first, after, found := strings.Cut(rest, "/"); found && len(first) > 1 && first[0] == 'v' {
		if strings.Trim(first[1:], "0123456789") == "" {
			rest = after
		}
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}

var (
	_ Uploader = (*LocalUploader)(nil)
	_ Uploader = (*CloudinaryUploader)(nil)
)
