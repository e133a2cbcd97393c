package resume

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyze extracts ResumeData from the PDF in the "file" form field
func Analyze(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			err = validators.ErrNoFile
		}

		respond.Error(c, err)
		return
	}

	if !service.IsPDFName(fh.Filename) {
		respond.Error(c, service.ErrUnsupportedFileType)
		return
	}

	if err := validators.ResumeUpload(fh, d.MaxUploadSize); err != nil {
		respond.Error(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, fmt.Errorf("failed to open uploaded file, %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, fmt.Errorf("failed to read uploaded file, %w", err))
		return
	}

	resume, err := d.Resumes.Extract(c.Request.Context(), fh.Filename, data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	if d.Archive != nil {
		archive(c.Request.Context(), d.Archive, userID, requestID, data)
	}

	c.JSON(http.StatusOK, resume)
}

// archive keeps a copy of the upload. Failing to do so doesn't fail the request.
func archive(ctx context.Context, a service.Archive, userID, requestID string, data []byte) {
	key, err := service.ResumeKey(userID)
	if err == nil {
		err = a.Put(ctx, key, "application/pdf", data)
	}

	if err != nil {
		zap.L().Warn("Failed to archive resume", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Debug("Resume archived", zap.String("key", key), zap.String("requestID", requestID))
}
