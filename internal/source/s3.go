package source

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/djboot-dev/djboot/internal/errors"
)

// S3Source downloads a boilerplate archive from an S3 bucket.
//
// The object is expected to be a .tar.gz of the boilerplate tree, either at
// the archive root or under a single top-level directory (the layout GitHub
// release tarballs use).
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source creates a source reading bucket/key with the given client.
func NewS3Source(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// NewS3SourceFromEnv builds an S3 source using the ambient AWS configuration
// (environment, shared config, instance role).
func NewS3SourceFromEnv(ctx context.Context, bucket, key string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, key), nil
}

// Fetch downloads the archive and extracts it under workDir, returning the
// extracted boilerplate root.
func (s *S3Source) Fetch(ctx context.Context, workDir string) (string, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return "", errors.New("E021").
			WithPath("s3://" + s.bucket + "/" + s.key).
			Wrap(err)
	}
	defer result.Body.Close()

	archive := filepath.Join(workDir, "boilerplate.tar.gz")
	if err := writeStream(archive, result.Body); err != nil {
		return "", errors.New("E021").WithPath(archive).Wrap(err)
	}

	extracted := filepath.Join(workDir, "boilerplate")
	if err := extractTarGz(archive, extracted); err != nil {
		return "", err
	}
	return boilerplateRoot(extracted)
}

// writeStream copies a response body to a file.
func writeStream(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

// boilerplateRoot resolves the tree root inside an extracted archive. A
// single top-level directory is descended into.
func boilerplateRoot(dir string) (string, error) {
	if looksLikeBoilerplate(dir) {
		return dir, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.New("E022").WithPath(dir).Wrap(err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		nested := filepath.Join(dir, entries[0].Name())
		if looksLikeBoilerplate(nested) {
			return nested, nil
		}
	}
	return "", errors.New("E022").
		WithPath(dir).
		WithDetail("The archive does not contain a boilerplate tree")
}
