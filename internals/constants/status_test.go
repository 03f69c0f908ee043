package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveStatusToggle(t *testing.T) {
	assert.Equal(t, Inactive, Active.Toggle())
	assert.Equal(t, Active, Inactive.Toggle())
	assert.Equal(t, Active, Active.Toggle().Toggle())
	assert.Equal(t, "inactive", Inactive.String())
}

func TestClientStatusToggle(t *testing.T) {
	assert.Equal(t, ClientInactive, ClientActive.Toggle())
	assert.Equal(t, ClientActive, ClientInactive.Toggle())
	assert.Equal(t, ClientActive, ClientStatus("").Toggle())
	assert.True(t, ClientActive.Valid())
	assert.False(t, ClientStatus("suspended").Valid())
}

func TestAssetClassRules(t *testing.T) {
	assert.True(t, AssetImage.AcceptsMime("image/webp"))
	assert.True(t, AssetVideo.AcceptsMime("video/mp4; codecs=avc1"))
	assert.False(t, AssetVideo.AcceptsMime("video/x-flv"))
	assert.True(t, AssetDocument.AcceptsMime("application/pdf"))
	assert.False(t, AssetDocument.AcceptsMime("application/x-msdownload"))

	assert.Equal(t, int64(10<<20), AssetImage.MaxBytes())
	assert.Equal(t, "documents", AssetDocument.Dir())
}

func TestDetectAssetClassFromExt(t *testing.T) {
	assert.Equal(t, AssetVideo, DetectAssetClassFromExt("intro_3.MOV"))
	assert.Equal(t, AssetImage, DetectAssetClassFromExt("cover.webp"))
	assert.Equal(t, AssetDocument, DetectAssetClassFromExt("notes.pdf"))
	assert.Equal(t, AssetDocument, DetectAssetClassFromExt("README"))
}
