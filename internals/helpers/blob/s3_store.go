package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

/* =======================================================================
   S3-compatible backend (AWS, MinIO, R2...)
======================================================================= */

type S3Store struct {
	Client     *s3.Client
	BucketName string
	PublicBase string
	ACL        types.ObjectCannedACL
}

func NewS3StoreFromEnv(ctx context.Context) (*S3Store, error) {
	bucket := getEnv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("missing env: S3_BUCKET")
	}

	opts := []func(*config.LoadOptions) error{}
	if region := getEnv("S3_REGION"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if ak, sk := getEnv("S3_ACCESS_KEY"), getEnv("S3_SECRET_KEY"); ak != "" && sk != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, sk, getEnv("S3_SESSION_TOKEN")),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := getEnv("S3_ENDPOINT")
	s3Opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: endpoint != "",
	}
	if endpoint != "" {
		s3Opts.BaseEndpoint = aws.String(endpoint)
	}

	base := firstNonEmpty(getEnv("BLOB_PUBLIC_BASE"), getEnv("S3_PUBLIC_BASE"))
	switch {
	case base != "":
	case endpoint != "":
		base = strings.TrimRight(endpoint, "/") + "/" + bucket
	default:
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}

	acl := types.ObjectCannedACLPublicRead
	if strings.EqualFold(getEnv("S3_ACL"), "private") {
		acl = types.ObjectCannedACLPrivate
	}

	return &S3Store{
		Client:     s3.New(s3Opts),
		BucketName: bucket,
		PublicBase: strings.TrimRight(base, "/"),
		ACL:        acl,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.BucketName),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		ACL:          s.ACL,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	_, err := s.Client.PutObject(ctx, in)
	return err
}

func (s *S3Store) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := s.Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.BucketName),
		CopySource: aws.String(s.BucketName + "/" + srcKey),
		Key:        aws.String(dstKey),
		ACL:        s.ACL,
	})
	if isS3NotFound(err) {
		return ErrObjectNotFound
	}
	return err
}

// Delete mirrors OSSStore: S3 deletes are silent for missing keys, so
// existence is checked with HeadObject first.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if isS3NotFound(err) {
		return ErrObjectNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.PublicBase + "/" + key
}

func (s *S3Store) KeyFromURL(url string) (string, error) {
	return keyUnderBase(s.PublicBase, url)
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	return errors.As(err, &nf) || errors.As(err, &nsk)
}
