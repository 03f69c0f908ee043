package constants

import (
	"path/filepath"
	"strings"
)

// Asset classes. Each one owns a top-level directory in the blob store.
type AssetClass string

const (
	AssetImage    AssetClass = "image"
	AssetVideo    AssetClass = "video"
	AssetDocument AssetClass = "document"
)

func (a AssetClass) Dir() string {
	switch a {
	case AssetImage:
		return "images"
	case AssetVideo:
		return "videos"
	default:
		return "documents"
	}
}

// Upload limits per class.
const (
	MaxImageBytes    int64 = 10 << 20
	MaxVideoBytes    int64 = 1536 << 20
	MaxDocumentBytes int64 = 50 << 20
)

func (a AssetClass) MaxBytes() int64 {
	switch a {
	case AssetImage:
		return MaxImageBytes
	case AssetVideo:
		return MaxVideoBytes
	default:
		return MaxDocumentBytes
	}
}

var (
	VideoMimeTypes = []string{
		"video/mp4",
		"video/mpeg",
		"video/quicktime",
		"video/x-msvideo",
		"video/x-ms-wmv",
		"video/webm",
	}

	DocumentMimeTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain",
		"application/zip",
		"application/x-rar-compressed",
		"application/vnd.rar",
		"image/jpeg",
		"image/png",
		"image/gif",
	}

	videoExts = map[string]bool{
		".mp4": true, ".mpeg": true, ".mpg": true, ".mov": true,
		".avi": true, ".wmv": true, ".webm": true,
	}
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
)

// AcceptsMime reports whether a declared content type is allowed for the class.
func (a AssetClass) AcceptsMime(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	switch a {
	case AssetImage:
		return strings.HasPrefix(mime, "image/")
	case AssetVideo:
		return contains(VideoMimeTypes, mime)
	default:
		return contains(DocumentMimeTypes, mime)
	}
}

// DetectAssetClassFromExt is the fallback used when a URL carries no class
// directory: video extensions, then image extensions, else document.
func DetectAssetClassFromExt(filename string) AssetClass {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case videoExts[ext]:
		return AssetVideo
	case imageExts[ext]:
		return AssetImage
	default:
		return AssetDocument
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
