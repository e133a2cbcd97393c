// Package service contains the components the HTTP handlers are built on.
// Every failure a caller should know about is one of the sentinel errors
// below, wrapped with whatever detail is useful in the logs.
package service

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrFetch               = errors.New("failed to fetch url")
	ErrScrape              = errors.New("failed to analyze job posting")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtraction          = errors.New("failed to extract resume")
	ErrGeneration          = errors.New("failed to generate cover letter")
	ErrRender              = errors.New("failed to render pdf")
	ErrNotFound            = errors.New("application not found")
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}
