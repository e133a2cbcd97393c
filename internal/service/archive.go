package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/molliqajbedrush-arch/enerbewwer/aws"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive keeps a copy of uploaded résumés. Keys are slash separated.
type Archive interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// ResumeKey names the object an uploaded résumé is stored under
func ResumeKey(userID string) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("failed to generate archive key, %w", err)
	}

	return "resumes/" + userID + "/" + id + ".pdf", nil
}

type S3Archive struct {
	s3 *aws.S3Client
}

func NewS3Archive(c *aws.S3Client) *S3Archive {
	return &S3Archive{s3: c}
}

func (a *S3Archive) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := a.s3.C.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        a.s3.Bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentType:   &contentType,
		ContentLength: ptr(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s, %w", key, err)
	}

	return nil
}

type LocalArchive struct {
	root string
}

func NewLocalArchive(root string) *LocalArchive {
	return &LocalArchive{root: root}
}

func (a *LocalArchive) Put(_ context.Context, key, _ string, data []byte) error {
	path := filepath.Join(a.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create archive directory, %w", err)
	}

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("failed to write %s, %w", key, err)
	}

	return nil
}

func ptr[T any](v T) *T {
	return &v
}
