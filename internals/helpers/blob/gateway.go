package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"certihub_backend/internals/constants"
	helper "certihub_backend/internals/helpers"

	"github.com/rs/zerolog/log"
)

// Upload describes one file headed for the store.
type Upload struct {
	Body        io.Reader
	Size        int64
	Class       constants.AssetClass
	Name        string // human label, sanitized into the object name
	OwnerID     uint   // 0 when the owning row does not exist yet
	Subdir      string // documents only, see DocumentSubdir
	Ext         string // documents only; images and videos have fixed extensions
	ContentType string
}

type PutResult struct {
	URL       string
	Key       string
	Suffix    string
	Temporary bool
}

// OrphanRecorder remembers keys whose cleanup failed so a job can retry.
type OrphanRecorder interface {
	Record(ctx context.Context, key, reason string, cause error)
}

// Gateway lays out object keys per asset class and owns the
// upload / rename / delete lifecycle of entity files.
//
// Key layout: [prefix/]<class dir>/[subdir/]<sanitized name>_<suffix><ext>
type Gateway struct {
	Store   Store
	Prefix  string
	Orphans OrphanRecorder
	Now     func() time.Time
}

func NewGateway(store Store, prefix string) *Gateway {
	return &Gateway{Store: store, Prefix: strings.Trim(prefix, "/"), Now: time.Now}
}

func (g *Gateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Put uploads u. Without an OwnerID the name is suffixed with the current
// unix-millis and the result is marked Temporary; the caller renames it
// once the row id is known.
func (g *Gateway) Put(ctx context.Context, u Upload) (PutResult, error) {
	suffix, temporary := "", false
	if u.OwnerID > 0 {
		suffix = strconv.FormatUint(uint64(u.OwnerID), 10)
	} else {
		suffix = strconv.FormatInt(g.now().UnixMilli(), 10)
		temporary = true
	}

	filename := helper.SanitizeFileName(u.Name) + "_" + suffix + extFor(u.Class, u.Ext)
	key := g.objectKey(u.Class, u.Subdir, filename)

	if err := g.Store.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("[BLOB][PUT] upload failed")
		return PutResult{}, helper.NewUpstreamStorageError("Failed to upload file", err)
	}
	log.Info().Str("key", key).Bool("temporary", temporary).Msg("[BLOB][PUT] uploaded")

	return PutResult{
		URL:       g.Store.PublicURL(key),
		Key:       key,
		Suffix:    suffix,
		Temporary: temporary,
	}, nil
}

// Rename swaps the trailing _<oldSuffix> of the object name for
// _<newSuffix> by copying the object and deleting the original. A failed
// delete of the original is recorded as an orphan, not returned.
func (g *Gateway) Rename(ctx context.Context, url, oldSuffix, newSuffix string) (string, error) {
	key, err := g.Store.KeyFromURL(url)
	if err != nil {
		return "", err
	}
	dir, file := path.Split(key)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	if oldSuffix == "" || !strings.HasSuffix(stem, "_"+oldSuffix) {
		return "", fmt.Errorf("blob: %q does not end with suffix %q", key, oldSuffix)
	}

	newKey := dir + strings.TrimSuffix(stem, oldSuffix) + newSuffix + ext
	if newKey == key {
		return url, nil
	}
	if err := g.Store.Copy(ctx, key, newKey); err != nil {
		return "", helper.NewUpstreamStorageError("Failed to rename file", err)
	}
	if err := g.Store.Delete(ctx, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
		g.forget(ctx, key, "rename", err)
	}
	return g.Store.PublicURL(newKey), nil
}

// Finalize renames a temporary upload so it carries ownerID. When the
// rename fails the temporary URL stays in use.
func (g *Gateway) Finalize(ctx context.Context, res PutResult, ownerID uint) string {
	if !res.Temporary {
		return res.URL
	}
	url, err := g.Rename(ctx, res.URL, res.Suffix, strconv.FormatUint(uint64(ownerID), 10))
	if err != nil {
		log.Warn().Err(err).Str("url", res.URL).Msg("[BLOB][FINALIZE] rename failed, keeping temporary name")
		return res.URL
	}
	return url
}

// Replace drops oldURL after newURL has taken its place. Identical URLs
// point at the same object, which has just been overwritten.
func (g *Gateway) Replace(ctx context.Context, oldURL, newURL, reason string) {
	if oldURL == "" || oldURL == newURL {
		return
	}
	g.DeleteQuietly(ctx, oldURL, reason)
}

// Delete removes the object behind url. Missing objects and URLs that do
// not belong to this store are not errors.
func (g *Gateway) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	key, err := g.ResolveKey(url)
	if errors.Is(err, ErrForeignURL) {
		log.Debug().Str("url", url).Msg("[BLOB][DELETE] foreign url, nothing to remove")
		return nil
	}
	if err != nil {
		return err
	}
	if err := g.Store.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			log.Debug().Str("key", key).Msg("[BLOB][DELETE] already absent")
			return nil
		}
		return helper.NewUpstreamStorageError("Failed to delete file", err)
	}
	log.Info().Str("key", key).Msg("[BLOB][DELETE] removed")
	return nil
}

// DeleteQuietly is Delete for cleanup paths: failures are logged and handed
// to the orphan recorder, never returned.
func (g *Gateway) DeleteQuietly(ctx context.Context, url, reason string) {
	if err := g.Delete(ctx, url); err != nil {
		key, kerr := g.ResolveKey(url)
		if kerr != nil {
			key = url
		}
		g.forget(ctx, key, reason, err)
	}
}

func (g *Gateway) forget(ctx context.Context, key, reason string, cause error) {
	log.Warn().Err(cause).Str("key", key).Str("reason", reason).Msg("[BLOB] cleanup failed, leaving orphan")
	if g.Orphans != nil {
		g.Orphans.Record(ctx, key, reason, cause)
	}
}

// ResolveKey maps a public URL to its object key. URLs already carrying a
// class directory map directly; bare names are routed by extension.
func (g *Gateway) ResolveKey(url string) (string, error) {
	key, err := g.Store.KeyFromURL(url)
	if err != nil {
		return "", err
	}
	if _, ok := g.classFromKey(key); ok {
		return key, nil
	}
	class := constants.DetectAssetClassFromExt(key)
	return g.objectKey(class, "", path.Base(key)), nil
}

// Owns reports whether url points into this store.
func (g *Gateway) Owns(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	_, err := g.Store.KeyFromURL(url)
	return err == nil
}

// ClassOf reports the asset class a URL routes to on delete.
func (g *Gateway) ClassOf(url string) (constants.AssetClass, error) {
	key, err := g.ResolveKey(url)
	if err != nil {
		return "", err
	}
	class, _ := g.classFromKey(key)
	return class, nil
}

func (g *Gateway) classFromKey(key string) (constants.AssetClass, bool) {
	rel := key
	if g.Prefix != "" {
		if !strings.HasPrefix(rel, g.Prefix+"/") {
			return "", false
		}
		rel = strings.TrimPrefix(rel, g.Prefix+"/")
	}
	first := strings.SplitN(rel, "/", 2)[0]
	for _, c := range []constants.AssetClass{constants.AssetImage, constants.AssetVideo, constants.AssetDocument} {
		if first == c.Dir() && strings.Contains(rel, "/") {
			return c, true
		}
	}
	return "", false
}

func (g *Gateway) objectKey(class constants.AssetClass, subdir, filename string) string {
	parts := make([]string, 0, 4)
	if g.Prefix != "" {
		parts = append(parts, g.Prefix)
	}
	parts = append(parts, class.Dir())
	if class == constants.AssetDocument && strings.TrimSpace(subdir) != "" {
		parts = append(parts, strings.Trim(subdir, "/"))
	}
	parts = append(parts, filename)
	return strings.Join(parts, "/")
}

// DocumentSubdir is the per-video directory documents nest under.
func DocumentSubdir(videoName string, videoID uint) string {
	return helper.SanitizeFileName(videoName) + "_" + strconv.FormatUint(uint64(videoID), 10)
}

func extFor(class constants.AssetClass, ext string) string {
	switch class {
	case constants.AssetImage:
		return ".jpg"
	case constants.AssetVideo:
		return ".mp4"
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
