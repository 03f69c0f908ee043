package blob

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	helper "certihub_backend/internals/helpers"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	photoMaxW    = 1600
	photoMaxH    = 1600
	photoQuality = 85
)

// NormalizePhoto decodes jpeg/png/gif/webp, bounds it to 1600x1600 keeping
// aspect, and re-encodes as JPEG so every stored image matches its .jpg key.
func NormalizePhoto(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, helper.NewValidationError("Empty image file")
	}

	img, err := decodePhoto(data)
	if err != nil {
		return nil, helper.NewValidationError("Unsupported image format (use jpg/png/gif/webp)")
	}

	b := img.Bounds()
	if b.Dx() > photoMaxW || b.Dy() > photoMaxH {
		img = imaging.Fit(img, photoMaxW, photoMaxH, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(photoQuality)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodePhoto(data []byte) (image.Image, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(http.DetectContentType(head), "webp") {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
