package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"barterhub/pkg/logger"
)

const publicURLPrefix = "https://storage.googleapis.com/"

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	c := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	// Browsers upload directly against these objects, so the bucket needs
	// CORS. Failure here is an ops problem, not a startup blocker.
	if err := c.ensureBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return c, nil
}

func (c *CloudStorageClient) ensureBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("get bucket attributes: %w", err)
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          3600,
			Methods:         []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type", "x-goog-resumable"},
		}},
	})
	if err != nil {
		return fmt.Errorf("update bucket CORS: %w", err)
	}

	return nil
}

func makeObjectName(fileType, folder string) string {
	ext, ok := extByContentType[fileType]
	if !ok {
		ext = ".bin"
	}

	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().Format("20060102150405"), ext)
}

// UploadFile stores the file under a generated object name and returns its
// public URL. Objects are world-readable.
func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	name := makeObjectName(fileType, folder)

	obj := c.client.Bucket(c.bucketName).Object(name)
	w := obj.NewWriter(ctx)
	w.ContentType = fileType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, file); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("set object ACL: %w", err)
	}

	return publicURLPrefix + c.bucketName + "/" + name, nil
}

// DeleteFile removes the object a public URL points at. URLs for other
// buckets are rejected.
func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	path, ok := strings.CutPrefix(fileURL, publicURLPrefix)
	if !ok {
		return fmt.Errorf("invalid storage URL")
	}

	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket != c.bucketName || object == "" {
		return fmt.Errorf("invalid storage URL or bucket mismatch")
	}

	if err := c.client.Bucket(c.bucketName).Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
