package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tatibku/backend/internal/config"
)

const (
	photoPrefix  = "foto-siswa"
	uploadExpiry = 15 * time.Minute
)

var ErrUnsupportedPhotoType = errors.New("unsupported photo content type")

// photoExtensions maps the accepted upload content types to the
// extension used in the object key.
var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoStore keeps student photos in a single MinIO bucket. Browsers
// upload directly with a short-lived presigned PUT URL, so the API
// never proxies image bytes.
type PhotoStore struct {
	client      *minio.Client
	bucket      string
	publicURL   string
	presignHost string
}

func NewPhotoStore(cfg *config.Config) (*PhotoStore, error) {
	minioCfg := cfg.MinIO
	client, err := minio.New(minioCfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioCfg.AccessKey, minioCfg.SecretKey, ""),
		Secure: minioCfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, minioCfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, minioCfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Bucket %s created", minioCfg.Bucket)
	}

	return &PhotoStore{
		client:      client,
		bucket:      minioCfg.Bucket,
		publicURL:   minioCfg.PublicURL,
		presignHost: minioCfg.PresignHost,
	}, nil
}

// PresignUpload validates the content type, picks a fresh object key
// under the student's prefix, and returns a presigned PUT URL. The
// expiry is returned in seconds for the API response.
func (s *PhotoStore) PresignUpload(siswaID uuid.UUID, contentType string) (uploadURL, objectKey string, expiresIn int64, err error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", "", 0, ErrUnsupportedPhotoType
	}

	objectKey = fmt.Sprintf("%s/%s/%s.%s", photoPrefix, siswaID, uuid.New(), ext)
	presigned, err := s.client.PresignedPutObject(context.Background(), s.bucket, objectKey, uploadExpiry)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to presign upload: %w", err)
	}

	// The presign host differs from the internal endpoint when MinIO
	// sits behind a reverse proxy.
	if s.presignHost != "" && presigned.Host != s.presignHost {
		presigned.Host = s.presignHost
	}
	return presigned.String(), objectKey, int64(uploadExpiry.Seconds()), nil
}

func (s *PhotoStore) Exists(objectKey string) (bool, error) {
	_, err := s.client.StatObject(context.Background(), s.bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *PhotoStore) Remove(objectKey string) error {
	return s.client.RemoveObject(context.Background(), s.bucket, objectKey, minio.RemoveObjectOptions{})
}

func (s *PhotoStore) PublicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, objectKey)
}

// KeyFromURL recovers the object key from a stored public URL. URLs
// that do not point into this store yield ok=false.
func (s *PhotoStore) KeyFromURL(fotoURL string) (string, bool) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(fotoURL, prefix) || len(fotoURL) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(fotoURL, prefix), true
}
