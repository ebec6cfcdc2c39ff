package handler

import (
	"net/http"
	"strings"

	"synergysphere/internal/middleware"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProfileHandler maintains the local mirror of identity-provider users.
type ProfileHandler struct {
	profiles *repository.ProfileRepository
}

func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id := middleware.GetIdentity(c)
	p, err := h.profiles.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Upsert takes id and email from the token; only the display fields come
// from the body.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	id := middleware.GetIdentity(c)
	var req struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.Profile{
		ID:          id.UserID,
		Email:       strings.ToLower(id.Email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		AvatarURL:   req.AvatarURL,
	}
	if err := h.profiles.Upsert(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
