package file

import (
	"context"
	"fmt"
	"time"
)

// Config contains environment configuration for file storage.
// Driver selects the backend: "local" for development, "s3" for production.
type Config struct {
	Driver        string        `env:"STORAGE_DRIVER" envDefault:"local"`
	UploadTimeout time.Duration `env:"STORAGE_UPLOAD_TIMEOUT" envDefault:"60s"`
	MaxUploadSize int64         `env:"STORAGE_MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB

	// Local driver
	LocalDir     string `env:"STORAGE_LOCAL_DIR" envDefault:"./uploads"`
	LocalBaseURL string `env:"STORAGE_LOCAL_BASE_URL" envDefault:"/files/"`

	// S3 driver
	S3Bucket         string `env:"STORAGE_S3_BUCKET"`
	S3Region         string `env:"STORAGE_S3_REGION" envDefault:"ap-south-1"`
	S3AccessKeyID    string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"STORAGE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"STORAGE_S3_ENDPOINT"`
	S3BaseURL        string `env:"STORAGE_S3_BASE_URL"`
	S3ForcePathStyle bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// NewFromConfig creates a Storage backend based on the configured driver.
func NewFromConfig(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL,
			WithLocalUploadTimeout(cfg.UploadTimeout))
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, WithS3UploadTimeout(cfg.UploadTimeout))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
