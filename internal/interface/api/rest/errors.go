package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/domain/apperr"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{apperr.ErrValidation, http.StatusBadRequest},
	{apperr.ErrInvalidSignature, http.StatusBadRequest},
	{apperr.ErrUnauthorized, http.StatusUnauthorized},
	{apperr.ErrForbidden, http.StatusForbidden},
	{apperr.ErrNotFound, http.StatusNotFound},
	{apperr.ErrGone, http.StatusGone},
	{apperr.ErrConflict, http.StatusConflict},
}

// writeError maps a service error to its HTTP status and {"message"} body.
// Anything unclassified is logged and answered with fallback.
func writeError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var sl *apperr.SizeLimitError
	if errors.As(err, &sl) {
		c.JSON(http.StatusBadRequest, gin.H{"message": sl.Error(), "requiresUpgrade": true})
		return
	}

	for _, k := range statusByKind {
		if errors.Is(err, k.kind) {
			msg := apperr.Message(err)
			if msg == "" {
				msg = fallback
			}
			c.JSON(k.status, gin.H{"message": msg})
			return
		}
	}

	logger.Error(fallback,
		zap.String("method", c.Request.Method),
		zap.String("url", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

func badRequest(c *gin.Context, msg string, details map[string]string) {
	body := gin.H{"message": msg}
	if details != nil {
		body["details"] = details
	}
	c.JSON(http.StatusBadRequest, body)
}
