package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	accsvc "staybase/internal/app/services/accommodation"
	"staybase/internal/app/services/blocksvc"
	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
	domainpricing "staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
)

// respondError translates domain errors into HTTP status codes. Unknown
// errors become an opaque 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainacc.ErrNotFound),
		errors.Is(err, domainpricing.ErrRuleNotFound),
		errors.Is(err, domainblocks.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainacc.ErrNotOwned),
		errors.Is(err, accsvc.ErrCannotManage):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domainpricing.ErrRuleOverlap),
		errors.Is(err, domainpricing.ErrActiveReservations),
		errors.Is(err, domainblocks.ErrActiveReservations):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isBadInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isBadInput(err error) bool {
	for _, candidate := range []error{
		daterange.ErrInvalidPeriod,
		daterange.ErrInvalidStay,
		daterange.ErrBadDayFormat,
		domainacc.ErrNameRequired,
		domainacc.ErrLocation,
		domainacc.ErrGuestBounds,
		domainacc.ErrGuestMinimum,
		domainacc.ErrNegativePrice,
		domainpricing.ErrNegativeOverride,
		domainpricing.ErrMultiplier,
		accsvc.ErrTooManyPhotos,
		accsvc.ErrPhotoTooLarge,
		accsvc.ErrNotImage,
		accsvc.ErrNoPhotos,
		blocksvc.ErrReservationIDRequired,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
