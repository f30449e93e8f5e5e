package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/argtree/history"
)

// S3Store writes one JSON object per entry into a bucket.
type S3Store struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

func NewS3Store(endpoint, bucketName, accessKey, secretKey, prefix string, useSsl bool) (*S3Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "history"
	}

	return &S3Store{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
	}, nil
}

// Open checks that the bucket exists.
func (ss *S3Store) Open(ctx context.Context) error {
	exists, err := ss.client.BucketExists(ctx, ss.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket '%s' does not exist", ss.bucketName)
	}
	return nil
}

func (*S3Store) Name() string {
	return "s3"
}

func (ss *S3Store) Append(ctx context.Context, entry history.Entry) error {
	value, err := entry.Marshal()
	if err != nil {
		return err
	}

	objectName := ss.prefix + "/" + entry.Key() + ".json"
	_, err = ss.client.PutObject(ctx, ss.bucketName, objectName, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (ss *S3Store) List(ctx context.Context, limit int) ([]history.Entry, error) {
	var keys []string
	for object := range ss.client.ListObjects(ctx, ss.bucketName, minio.ListObjectsOptions{
		Prefix:    ss.prefix + "/",
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		keys = append(keys, object.Key)
	}

	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	entries := make([]history.Entry, 0, len(keys))
	for _, key := range keys {
		entry, err := ss.getEntry(ctx, key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (ss *S3Store) getEntry(ctx context.Context, key string) (history.Entry, error) {
	object, err := ss.client.GetObject(ctx, ss.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return history.Entry{}, err
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return history.Entry{}, err
	}
	return history.Unmarshal(data)
}

func (ss *S3Store) Close() error {
	return nil
}
