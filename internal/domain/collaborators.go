package domain

import (
	"context"
	"io"
)

// Hasher hashes and verifies secrets
type Hasher interface {
	Hash(text string) (string, error)
	Compare(value, digest string) bool
}

// TokenIssuer signs and verifies subject tokens
type TokenIssuer interface {
	Encrypt(subject string) (string, error)
	Decrypt(token string) (string, error)
}

// File is an upload unit for object storage
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// FileUploader stores a file and returns its public URL
type FileUploader interface {
	SaveFile(ctx context.Context, file File) (string, error)
}

// Publisher sends a notification message
type Publisher interface {
	Send(ctx context.Context, message string) error
}
