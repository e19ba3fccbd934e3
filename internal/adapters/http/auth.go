package http

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/metrics"
)

const sessionUserKey = "user_id"

// sessionUserID reads the session-bound identity, "" when not logged in.
func sessionUserID(c *gin.Context) domain.UserID {
	s := sessions.Default(c)
	if v, ok := s.Get(sessionUserKey).(string); ok {
		return domain.UserID(v)
	}
	return ""
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	user, err := h.Orch.Users.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	metrics.UsersRegistered.Inc()

	s := sessions.Default(c)
	s.Set(sessionUserKey, string(user.ID))
	if err := s.Save(); err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("session save")
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"message": "Signup successful. Session created.",
	})
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": err.Error()})
		return
	}

	user, err := h.Orch.Users.Login(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	s := sessions.Default(c)
	s.Set(sessionUserKey, string(user.ID))
	if err := s.Save(); err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("session save")
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"message": "Login successful. Session created.",
	})
}

func (h *Handlers) logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		log.Error().Str("module", "adapters.http").Err(err).Msg("session save")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out. Session cleared."})
}

// verify doubles as /auth/me. A session pointing at a vanished user is
// cleared, matching a restart that wiped the store.
func (h *Handlers) verify(c *gin.Context) {
	uid := sessionUserID(c)
	if uid == "" {
		abortWithError(c, domain.ErrUnauthenticated)
		return
	}

	user, ok := h.Orch.Users.GetByID(uid)
	if !ok {
		s := sessions.Default(c)
		s.Clear()
		_ = s.Save()
		abortWithError(c, domain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":       user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"authenticated": true,
	})
}
