package blob

import (
	"context"
	"strings"
	"testing"
	"time"

	"certihub_backend/internals/constants"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedOrphan struct{ key, reason string }

type orphanSpy struct{ rows []recordedOrphan }

func (s *orphanSpy) Record(_ context.Context, key, reason string, _ error) {
	s.rows = append(s.rows, recordedOrphan{key, reason})
}

func newTestGateway(prefix string) (*Gateway, *MemoryStore, *orphanSpy) {
	store := NewMemoryStore("https://cdn.test")
	spy := &orphanSpy{}
	g := NewGateway(store, prefix)
	g.Orphans = spy
	g.Now = func() time.Time { return time.UnixMilli(1700000000123) }
	return g, store, spy
}

func TestPutNamesObjectByOwner(t *testing.T) {
	g, store, _ := newTestGateway("certihub")
	res, err := g.Put(context.Background(), Upload{
		Body:    strings.NewReader("video"),
		Class:   constants.AssetVideo,
		Name:    "Safety Intro",
		OwnerID: 12,
	})
	require.NoError(t, err)
	assert.False(t, res.Temporary)
	assert.Equal(t, "certihub/videos/safety_intro_12.mp4", res.Key)
	assert.Equal(t, "https://cdn.test/certihub/videos/safety_intro_12.mp4", res.URL)
	assert.True(t, store.Has(res.Key))
}

func TestPutTemporaryThenFinalize(t *testing.T) {
	g, store, _ := newTestGateway("")
	ctx := context.Background()
	res, err := g.Put(ctx, Upload{
		Body:  strings.NewReader("jpg"),
		Class: constants.AssetImage,
		Name:  "ISO 9001",
	})
	require.NoError(t, err)
	assert.True(t, res.Temporary)
	assert.Equal(t, "1700000000123", res.Suffix)
	assert.Equal(t, "images/iso_9001_1700000000123.jpg", res.Key)

	url := g.Finalize(ctx, res, 5)
	assert.Equal(t, "https://cdn.test/images/iso_9001_5.jpg", url)
	assert.True(t, store.Has("images/iso_9001_5.jpg"))
	assert.False(t, store.Has(res.Key))
}

func TestFinalizeKeepsNonTemporaryURL(t *testing.T) {
	g, _, _ := newTestGateway("")
	res := PutResult{URL: "https://cdn.test/videos/a_1.mp4"}
	assert.Equal(t, res.URL, g.Finalize(context.Background(), res, 1))
}

func TestDocumentsNestUnderVideoSubdir(t *testing.T) {
	g, _, _ := newTestGateway("")
	res, err := g.Put(context.Background(), Upload{
		Body:    strings.NewReader("pdf"),
		Class:   constants.AssetDocument,
		Name:    "Handbook",
		OwnerID: 3,
		Subdir:  DocumentSubdir("Safety Intro", 12),
		Ext:     "PDF",
	})
	require.NoError(t, err)
	assert.Equal(t, "documents/safety_intro_12/handbook_3.pdf", res.Key)
}

func TestRenameRequiresSuffix(t *testing.T) {
	g, _, _ := newTestGateway("")
	_, err := g.Rename(context.Background(), "https://cdn.test/images/a_1.jpg", "99", "2")
	assert.Error(t, err)
}

func TestRenameRecordsOrphanWhenOriginalSurvives(t *testing.T) {
	g, store, spy := newTestGateway("")
	ctx := context.Background()
	res, err := g.Put(ctx, Upload{Body: strings.NewReader("x"), Class: constants.AssetImage, Name: "a"})
	require.NoError(t, err)

	store.FailDeletes = true
	url := g.Finalize(ctx, res, 4)
	assert.Equal(t, "https://cdn.test/images/a_4.jpg", url)
	require.Len(t, spy.rows, 1)
	assert.Equal(t, res.Key, spy.rows[0].key)
	assert.Equal(t, "rename", spy.rows[0].reason)
}

func TestDeleteIsTolerant(t *testing.T) {
	g, store, spy := newTestGateway("")
	ctx := context.Background()

	assert.NoError(t, g.Delete(ctx, ""))
	assert.NoError(t, g.Delete(ctx, "https://elsewhere.example/videos/a.mp4"))
	assert.NoError(t, g.Delete(ctx, "https://cdn.test/videos/missing_1.mp4"))

	res, err := g.Put(ctx, Upload{Body: strings.NewReader("x"), Class: constants.AssetVideo, Name: "v", OwnerID: 1})
	require.NoError(t, err)
	require.NoError(t, g.Delete(ctx, res.URL))
	assert.False(t, store.Has(res.Key))

	res, err = g.Put(ctx, Upload{Body: strings.NewReader("x"), Class: constants.AssetVideo, Name: "w", OwnerID: 2})
	require.NoError(t, err)
	store.FailDeletes = true
	err = g.Delete(ctx, res.URL)
	assert.True(t, helper.IsKind(err, helper.KindUpstreamStorage))

	g.DeleteQuietly(ctx, res.URL, "video-delete")
	require.Len(t, spy.rows, 1)
	assert.Equal(t, recordedOrphan{res.Key, "video-delete"}, spy.rows[0])
}

func TestReplaceSkipsSameURL(t *testing.T) {
	g, store, _ := newTestGateway("")
	ctx := context.Background()
	res, err := g.Put(ctx, Upload{Body: strings.NewReader("x"), Class: constants.AssetImage, Name: "p", OwnerID: 1})
	require.NoError(t, err)

	g.Replace(ctx, res.URL, res.URL, "photo-replace")
	assert.True(t, store.Has(res.Key))

	g.Replace(ctx, res.URL, "https://cdn.test/images/q_1.jpg", "photo-replace")
	assert.False(t, store.Has(res.Key))
}

func TestResolveKeyRoutesBareNamesByExtension(t *testing.T) {
	g, _, _ := newTestGateway("certihub")

	key, err := g.ResolveKey("https://cdn.test/intro_4.mov")
	require.NoError(t, err)
	assert.Equal(t, "certihub/videos/intro_4.mov", key)

	class, err := g.ClassOf("https://cdn.test/certihub/documents/v_1/x_2.pdf")
	require.NoError(t, err)
	assert.Equal(t, constants.AssetDocument, class)

	class, err = g.ClassOf("https://cdn.test/cover.png")
	require.NoError(t, err)
	assert.Equal(t, constants.AssetImage, class)

	_, err = g.ResolveKey("https://other.test/x.png")
	assert.ErrorIs(t, err, ErrForeignURL)
}

func TestOwns(t *testing.T) {
	g, _, _ := newTestGateway("")
	assert.True(t, g.Owns("https://cdn.test/videos/intro_1.mp4"))
	assert.False(t, g.Owns("https://youtube.example/watch?v=abc"))
	assert.False(t, g.Owns(""))
}
