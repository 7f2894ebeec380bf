package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// serviceAccount holds the fields of the JSON key needed for signing URLs.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// FirebaseStorageService implements BlobStore using a Firebase Storage bucket.
type FirebaseStorageService struct {
	client         *storage.Client
	bucketName     string
	serviceAccount *serviceAccount
}

// NewFirebaseStorageService creates a new FirebaseStorageService.
func NewFirebaseStorageService(serviceAccountJSONPath, bucketName string) (*FirebaseStorageService, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// Load service account for signing URLs
	sa, err := loadServiceAccount(serviceAccountJSONPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account for signing URLs: %w", err)
	}

	return &FirebaseStorageService{
		client:         client,
		bucketName:     bucketName,
		serviceAccount: sa,
	}, nil
}

func loadServiceAccount(path string) (*serviceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse service account file: %w", err)
	}
	return &sa, nil
}

// Upload writes an object with the given content type and public read ACL.
func (s *FirebaseStorageService) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	w := obj.NewWriter(ctx)

	// Set public read ACL
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	w.ObjectAttrs.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

// Download reads an object's bytes.
func (s *FirebaseStorageService) Download(ctx context.Context, objectPath string) ([]byte, error) {
	rc, err := s.client.Bucket(s.bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectPath, err)
	}
	return data, nil
}

// Delete deletes an object from the bucket. An already-missing object is not
// an error, so retried cleanups converge.
func (s *FirebaseStorageService) Delete(ctx context.Context, objectPath string) error {
	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	if err := obj.Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeletePrefix deletes every object under the given path prefix. Objects
// already gone are skipped, so a partial earlier cleanup can be retried.
func (s *FirebaseStorageService) DeletePrefix(ctx context.Context, prefix string) error {
	bucket := s.client.Bucket(s.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		if err := s.Delete(ctx, attrs.Name); err != nil {
			return fmt.Errorf("failed to delete object %s: %w", attrs.Name, err)
		}
	}
}

// PublicURL returns a public URL assuming the file is publicly accessible.
func (s *FirebaseStorageService) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", s.bucketName, url.QueryEscape(objectPath))
}

// SignedURL returns a signed URL valid for the specified duration.
func (s *FirebaseStorageService) SignedURL(objectPath string, expires time.Duration) (string, error) {
	u, err := storage.SignedURL(s.bucketName, objectPath, &storage.SignedURLOptions{
		GoogleAccessID: s.serviceAccount.ClientEmail,
		PrivateKey:     []byte(strings.ReplaceAll(s.serviceAccount.PrivateKey, `\n`, "\n")),
		Method:         "GET",
		Expires:        time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return u, nil
}

// Bucket returns the configured bucket name.
func (s *FirebaseStorageService) Bucket() string {
	return s.bucketName
}
