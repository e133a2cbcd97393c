// Package respond turns errors into HTTP responses. Every error a handler
// can hit is mapped here exactly once.
package respond

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/middleware"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/security"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrValidation wraps request bodies the binder rejected
var ErrValidation = errors.New("invalid request")

type rule struct {
	err     error
	status  int
	message string
}

// Order matters only where one error wraps another
var rules = []rule{
	{ErrValidation, http.StatusUnprocessableEntity, "Ungültige Anfrage"},
	{validators.ErrNoFile, http.StatusUnprocessableEntity, "Keine Datei hochgeladen"},
	{validators.ErrFileNameTooLong, http.StatusUnprocessableEntity, "Dateiname zu lang"},
	{validators.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "Datei zu groß"},
	{middleware.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "Datei zu groß"},

	{middleware.ErrNoBearer, http.StatusUnauthorized, "Nicht authentifiziert"},
	{security.ErrTokenExpired, http.StatusUnauthorized, "Token abgelaufen"},
	{security.ErrTokenInvalid, http.StatusUnauthorized, "Ungültiger Token"},
	{service.ErrUserNotFound, http.StatusUnauthorized, "Benutzer nicht gefunden"},
	{service.ErrEmailTaken, http.StatusBadRequest, "E-Mail bereits registriert"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Ungültige Anmeldedaten"},

	{service.ErrFetch, http.StatusBadRequest, "Fehler beim Abrufen der URL"},
	{service.ErrScrape, http.StatusInternalServerError, "Analysefehler"},
	{service.ErrUnsupportedFileType, http.StatusBadRequest, "Nur PDF-Dateien werden akzeptiert"},
	{service.ErrExtraction, http.StatusInternalServerError, "Fehler bei der PDF-Analyse"},
	{service.ErrGeneration, http.StatusInternalServerError, "Fehler bei der Generierung"},
	{service.ErrRender, http.StatusInternalServerError, "PDF-Fehler"},
	{service.ErrNotFound, http.StatusNotFound, "Bewerbung nicht gefunden"},

	{middleware.ErrRateLimited, http.StatusTooManyRequests, "Zu viele Anfragen"},
}

const internalMessage = "Interner Serverfehler"

// Status returns the HTTP status and client message for err
func Status(err error) (int, string) {
	if middleware.IsBodyTooLarge(err) {
		err = middleware.ErrBodyTooLarge
	}

	for _, r := range rules {
		if errors.Is(err, r.err) {
			return r.status, r.message
		}
	}

	return http.StatusInternalServerError, internalMessage
}

// Error writes the response for err. The detail only goes to the log.
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")
	status, message := Status(err)

	if status >= http.StatusInternalServerError {
		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", requestID))
	} else {
		zap.L().Debug("Request rejected", zap.Error(err), zap.Int("status", status), zap.String("requestID", requestID))
	}

	c.JSON(status, gin.H{
		"error":     message,
		"requestID": requestID,
	})
}

// Invalid answers a body the binder couldn't accept
func Invalid(c *gin.Context, err error) {
	Error(c, fmt.Errorf("%w, %v", ErrValidation, err))
}
