// Package file provides storage backends for uploaded documents such as plan
// images and scheme brochures, with content-based MIME validation.
//
// Two backends implement the Storage interface:
//
//   - LocalStorage stores files on the local filesystem, confined to a base
//     directory with path traversal protection. Intended for development.
//   - S3Storage stores files in Amazon S3 or any S3-compatible service, with
//     typed error classification for common API failures.
//
// The backend is usually selected through Config and NewFromConfig:
//
//	var cfg file.Config
//	// ... load from environment
//	storage, err := file.NewFromConfig(ctx, cfg)
//
// Validation helpers (IsImage, IsPDF, ValidateSize, ValidateMIMEType) inspect
// actual file content via http.DetectContentType rather than trusting the
// client-supplied filename, which prevents spoofed uploads.
package file
