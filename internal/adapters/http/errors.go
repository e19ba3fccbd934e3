package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/nav"
)

// abortWithError maps a typed failure to a status code. Anything outside the
// taxonomy is logged and reported as an opaque internal error.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "detail": err.Error()})
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidEmail):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "detail": err.Error()})
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "detail": err.Error()})
	case errors.Is(err, domain.ErrRoomExists),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"success": false, "detail": err.Error()})
	case errors.Is(err, domain.ErrRoomFull),
		errors.Is(err, domain.ErrNotMember),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, nav.ErrInvalidMode):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
	case errors.Is(err, nav.ErrGeocodeFailed),
		errors.Is(err, nav.ErrRouteFailed):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"success": false, "detail": err.Error()})
	default:
		log.Error().Str("module", "adapters.http").Err(err).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "detail": "internal server error"})
	}
}
