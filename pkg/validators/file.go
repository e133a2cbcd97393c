package validators

import (
	"errors"
	"mime/multipart"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
)

const maxFileNameSize = 255

// ResumeUpload checks the multipart header of an uploaded résumé. The file
// type itself is checked by the extractor.
func ResumeUpload(fh *multipart.FileHeader, maxSize int64) error {
	if fh == nil {
		return ErrNoFile
	}

	if fh.Filename == "" {
		return ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return ErrFileNameTooLong
	}

	if maxSize > 0 && fh.Size > maxSize {
		return ErrFileTooLarge
	}

	return nil
}
