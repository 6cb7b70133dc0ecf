package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
)

const maxMessageLen = 4000

type ConversationControl interface {
	Status(userID string) orchestrator.StateSnapshot
	Reset(userID string)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (core.UserProfile, error)
	SaveProfile(ctx context.Context, profile core.UserProfile) error
}

type Handler struct {
	coach    core.Coach
	router   core.CmdRouter
	conv     ConversationControl
	profiles ProfileStore
}

func NewHandler(coach core.Coach, router core.CmdRouter, conv ConversationControl, profiles ProfileStore) *Handler {
	return &Handler{
		coach:    coach,
		router:   router,
		conv:     conv,
		profiles: profiles,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	users := r.Group("/v1/users/:id")
	users.POST("/messages", h.PostMessage)
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.PutProfile)
	users.GET("/status", h.GetStatus)
	users.DELETE("/conversation", h.DeleteConversation)
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": core.AppVersion})
}

type messageRequest struct {
	Message string `json:"message"`
}

// POST /v1/users/:id/messages
func (h *Handler) PostMessage(c *gin.Context) {
	userID := c.Param("id")

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	text := strings.TrimSpace(req.Message)
	switch {
	case text == "":
		respondError(c, http.StatusBadRequest, "empty_message", errors.New("message must not be empty"))
		return
	case len(text) > maxMessageLen:
		respondError(c, http.StatusRequestEntityTooLarge, "message_too_long", errors.New("message exceeds 4000 bytes"))
		return
	}

	if h.router != nil {
		if out, ok := h.router.Execute(c.Request.Context(), userID, text); ok {
			c.JSON(http.StatusOK, commandReply(out))
			return
		}
	}

	c.JSON(http.StatusOK, h.coach.HandleMessage(c.Request.Context(), userID, text))
}

// GET /v1/users/:id/profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileUpdate struct {
	CareerGoals []string          `json:"career_goals"`
	Preferences *core.Preferences `json:"learning_preferences"`
}

// PUT /v1/users/:id/profile replaces goals and preferences when present in
// the body. Skills come from assessments only.
func (h *Handler) PutProfile(c *gin.Context) {
	userID := c.Param("id")

	var req profileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	if req.CareerGoals != nil {
		profile.CareerGoals = cleanGoals(req.CareerGoals)
	}
	if req.Preferences != nil {
		profile.Preferences = req.Preferences
	}

	if err := h.profiles.SaveProfile(ctx, profile); err != nil {
		respondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /v1/users/:id/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.conv.Status(c.Param("id")))
}

// DELETE /v1/users/:id/conversation
func (h *Handler) DeleteConversation(c *gin.Context) {
	h.conv.Reset(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func cleanGoals(goals []string) []string {
	out := make([]string, 0, len(goals))
	seen := make(map[string]bool, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		key := strings.ToLower(g)
		if g == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, g)
	}
	return out
}
