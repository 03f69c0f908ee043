package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"certihub_backend/internals/constants"
	helper "certihub_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

// FormFile is an opened multipart file that passed the class checks.
type FormFile struct {
	Header      *multipart.FileHeader
	ContentType string
	Ext         string
}

// CheckFormFile enforces the per-class size and content-type rules.
func CheckFormFile(fh *multipart.FileHeader, class constants.AssetClass) (*FormFile, error) {
	if fh == nil {
		return nil, helper.NewValidationError("No file provided")
	}
	if fh.Size > class.MaxBytes() {
		return nil, helper.NewValidationError(fmt.Sprintf("File too large (max %d MB)", class.MaxBytes()>>20))
	}
	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if !class.AcceptsMime(ct) {
		return nil, helper.NewValidationError(fmt.Sprintf("File type %q not allowed for %s uploads", ct, class))
	}
	return &FormFile{
		Header:      fh,
		ContentType: ct,
		Ext:         strings.ToLower(filepath.Ext(fh.Filename)),
	}, nil
}

// FormFileFrom reads field from a multipart request. A missing file is
// nil, nil unless required.
func FormFileFrom(c *fiber.Ctx, field string, class constants.AssetClass, required bool) (*FormFile, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		if required {
			return nil, helper.NewValidationError("No file provided in field " + field)
		}
		return nil, nil
	}
	return CheckFormFile(fh, class)
}

// Upload opens the file and fills an Upload for the gateway. Images are
// normalized to JPEG in memory; other classes stream from the temp file.
// The returned closer must be called after Put.
func (f *FormFile) Upload(class constants.AssetClass, name string, ownerID uint, subdir string) (Upload, io.Closer, error) {
	src, err := f.Header.Open()
	if err != nil {
		return Upload{}, nil, fmt.Errorf("open file: %w", err)
	}

	u := Upload{
		Class:       class,
		Name:        name,
		OwnerID:     ownerID,
		Subdir:      subdir,
		Ext:         f.Ext,
		ContentType: f.ContentType,
	}

	if class != constants.AssetImage {
		u.Body = src
		u.Size = f.Header.Size
		return u, src, nil
	}

	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("read file: %w", err)
	}
	jpg, err := NormalizePhoto(raw)
	if err != nil {
		return Upload{}, nil, err
	}
	u.Body = bytes.NewReader(jpg)
	u.Size = int64(len(jpg))
	u.ContentType = "image/jpeg"
	return u, io.NopCloser(nil), nil
}

// PutFormFile uploads f through the gateway and releases it.
func (g *Gateway) PutFormFile(ctx context.Context, f *FormFile, class constants.AssetClass, name string, ownerID uint, subdir string) (PutResult, error) {
	u, closer, err := f.Upload(class, name, ownerID, subdir)
	if err != nil {
		return PutResult{}, err
	}
	defer closer.Close()
	return g.Put(ctx, u)
}
