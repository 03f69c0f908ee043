package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/rs/zerolog/log"
)

/* =======================================================================
   Alibaba OSS backend
======================================================================= */

type OSSStore struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSSStoreFromEnv() (*OSSStore, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Warn().Msgf("[OSS] skip location check due to AccessDenied (bucket=%s)", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Info().Msgf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	base := firstNonEmpty(getEnv("BLOB_PUBLIC_BASE"), getEnv("ALI_OSS_PUBLIC_BASE"))
	if base == "" {
		end := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		base = fmt.Sprintf("https://%s.%s", bucketName, end)
	}

	return &OSSStore{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(base, "/"),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if size > 0 {
		opts = append(opts, oss.ContentLength(size))
	}
	return s.Bucket.PutObject(key, body, opts...)
}

func (s *OSSStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	if srcKey == "" || dstKey == "" {
		return fmt.Errorf("empty key")
	}
	_, err := s.Bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx))
	if isOSSNotFound(err) {
		return ErrObjectNotFound
	}
	return err
}

// Delete reports ErrObjectNotFound when the key is already gone. OSS itself
// answers 204 for missing keys, so existence is checked first.
func (s *OSSStore) Delete(ctx context.Context, key string) error {
	ok, err := s.Bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return err
	}
	if !ok {
		return ErrObjectNotFound
	}
	err = s.Bucket.DeleteObject(key, oss.WithContext(ctx))
	if isOSSNotFound(err) {
		return ErrObjectNotFound
	}
	return err
}

func (s *OSSStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.PublicBase + "/" + key
}

func (s *OSSStore) KeyFromURL(url string) (string, error) {
	return keyUnderBase(s.PublicBase, url)
}

func isOSSNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404
	}
	return false
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
