package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

type routeRequest struct {
	Start       string `json:"start" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Mode        string `json:"mode"`
}

// route geocodes both endpoints, then asks OSRM. Geocode failure is fatal;
// route failure degrades to the great-circle fallback.
func (h *Handlers) route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = "walking"
	}

	ctx := c.Request.Context()
	start, err := h.Nav.Geocode(ctx, req.Start)
	if err != nil {
		abortWithError(c, err)
		return
	}
	dest, err := h.Nav.Geocode(ctx, req.Destination)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res := h.Nav.RouteOrFallback(ctx, start, dest, req.Mode)
	c.JSON(http.StatusOK, gin.H{
		"start":       req.Start,
		"destination": req.Destination,
		"start_coord": start,
		"dest_coord":  dest,
		"distance_m":  res.DistanceM,
		"duration_s":  res.DurationS,
		"polyline":    res.Polyline,
		"steps":       res.Steps,
		"source":      res.Source,
		"fallback":    res.Fallback,
	})
}

type bookingRequest struct {
	UserID             string       `json:"user_id"`
	StartCoord         domain.Coord `json:"start_coord"`
	DestinationAddress string       `json:"destination_address" binding:"required"`
}

func (h *Handlers) bookWalk(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	dest, err := h.Nav.Geocode(c.Request.Context(), req.DestinationAddress)
	if err != nil {
		abortWithError(c, err)
		return
	}

	booking, matches := h.Orch.Bookings.Book(uid, req.StartCoord, req.DestinationAddress, dest)
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"matches": gin.H{
			"count":   len(matches),
			"matches": matches,
		},
	})
}

func (h *Handlers) myBookings(c *gin.Context) {
	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(c.Query("user_id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Orch.Bookings.ListByUser(uid))
}
