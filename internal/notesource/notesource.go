// Package notesource loads the raw note text that the parser consumes.
// Notes come from a local file, from stdin or from an object in Google Cloud
// Storage.
package notesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrInvalidGCSURI is returned for URIs that are not of the form gs://bucket/object.
var ErrInvalidGCSURI = errors.New("invalid GCS URI")

// StorageService fetches objects from cloud storage.
type StorageService interface {
	// FetchFromGCS downloads the object bytes for a gs:// URI.
	FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error)
}

// GCSStorageService is the StorageService backed by Google Cloud Storage.
type GCSStorageService struct {
	opts []option.ClientOption
}

// NewGCSStorageService creates a GCSStorageService. Without options the
// client uses Application Default Credentials.
func NewGCSStorageService(opts ...option.ClientOption) *GCSStorageService {
	return &GCSStorageService{opts: opts}
}

// FetchFromGCS downloads the object bytes for a gs:// URI.
func (s *GCSStorageService) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	return FetchFromGCS(ctx, gcsURI, s.opts...)
}

// ParseGCSURI splits gs://bucket/path/to/object into bucket and object name.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidGCSURI, uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w (no object path): %s", ErrInvalidGCSURI, uri)
	}

	return parts[0], parts[1], nil
}

// FetchFromGCS downloads the file bytes from the given GCS URI.
func FetchFromGCS(ctx context.Context, gcsURI string, opts ...option.ClientOption) ([]byte, error) {
	bucketName, objectPath, err := ParseGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: creating storage client: %w", err)
	}
	defer storageClient.Close()

	rc, err := storageClient.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: reading bytes: %w", err)
	}

	return data, nil
}

// ReadFile reads a notes file from disk.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read notes file %q: %w", path, err)
	}
	return string(data), nil
}

// ReadAll reads notes from r until EOF.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return string(data), nil
}

// Source says where to load notes from. GCSURI wins over Path; with neither
// set the notes are read from Stdin. A Path of "-" also means stdin.
type Source struct {
	GCSURI string
	Path   string
	Stdin  io.Reader

	// Storage serves GCSURI. Nil means a GCSStorageService with default credentials.
	Storage StorageService
}

// Load returns the note text described by src.
func Load(ctx context.Context, src Source) (string, error) {
	switch {
	case src.GCSURI != "":
		svc := src.Storage
		if svc == nil {
			svc = NewGCSStorageService()
		}
		data, err := svc.FetchFromGCS(ctx, src.GCSURI)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case src.Path != "" && src.Path != "-":
		return ReadFile(src.Path)

	default:
		if src.Stdin == nil {
			return "", errors.New("no notes source: give a file, a GCS URI or pipe notes to stdin")
		}
		return ReadAll(src.Stdin)
	}
}
