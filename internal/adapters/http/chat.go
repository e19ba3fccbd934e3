package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

type sendMessageRequest struct {
	UserID  string `json:"user_id"`
	RoomID  string `json:"room_id" binding:"required"`
	Message string `json:"message"`
}

func (h *Handlers) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(req.UserID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	msg, err := h.Orch.SendMessage(uid, domain.RoomID(req.RoomID), req.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *Handlers) getMessages(c *gin.Context) {
	roomID := domain.RoomID(c.Param("room_id"))

	limit := h.Cfg.HistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	msgs, err := h.Orch.GetMessages(roomID, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room_id": roomID, "messages": msgs})
}

func (h *Handlers) clearMessages(c *gin.Context) {
	roomID := domain.RoomID(c.Param("room_id"))

	uid, err := h.Orch.ResolveIdentity(sessionUserID(c), domain.UserID(c.Query("user_id")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.Orch.ClearMessages(uid, roomID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Messages for room %s cleared.", roomID),
	})
}
