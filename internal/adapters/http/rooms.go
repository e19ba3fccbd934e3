package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

const defaultMaxMembers = 10

type createRoomRequest struct {
	UserID      string        `json:"user_id"`
	Destination string        `json:"destination" binding:"required"`
	StartCoord  domain.Coord  `json:"start_coord"`
	DestCoord   *domain.Coord `json:"dest_coord"`
	MaxMembers  int           `json:"max_members"`
}

func (h *Handlers) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if req.MaxMembers == 0 {
		req.MaxMembers = defaultMaxMembers
	}

	// Geocode server-side when the client only sent the address. Geocode
	// failure aborts creation; no room is registered.
	var dest domain.Coord
	if req.DestCoord != nil {
		dest = *req.DestCoord
	} else {
		dest, err = h.Nav.Geocode(c.Request.Context(), req.Destination)
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	room, err := h.Orch.CreateRoom(uid, req.Destination, req.StartCoord, dest, req.MaxMembers)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    room,
		"message": fmt.Sprintf("Room %s created.", room.ID),
	})
}

func (h *Handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": h.Orch.ListRooms()})
}

type roomMemberRequest struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id" binding:"required"`
}

func (h *Handlers) joinRoom(c *gin.Context) {
	var req roomMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.Orch.JoinRoom(uid, domain.RoomID(req.RoomID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    room,
		"message": fmt.Sprintf("User %s joined room %s.", uid, room.ID),
	})
}

func (h *Handlers) leaveRoom(c *gin.Context) {
	var req roomMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.Orch.LeaveRoom(uid, domain.RoomID(req.RoomID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    room,
		"message": fmt.Sprintf("User %s left room %s.", uid, room.ID),
	})
}

type updateStatusRequest struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) updateRoomStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.Orch.UpdateRoomStatus(uid, domain.RoomID(req.RoomID), domain.RoomStatus(req.Status))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    room,
		"message": fmt.Sprintf("Room %s status updated to '%s'.", room.ID, room.Status),
	})
}

func (h *Handlers) deleteRoom(c *gin.Context) {
	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(c.Query("user_id")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	room, err := h.Orch.DeleteRoom(uid, domain.RoomID(c.Param("room_id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"room":    room,
		"message": fmt.Sprintf("Room %s deleted.", room.ID),
	})
}
