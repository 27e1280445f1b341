package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
	"github.com/newagesw/sales-bi/backend-go/internal/presets"
)

type PresetHandler struct {
	store presets.Store
}

func NewPresetHandler(store presets.Store) *PresetHandler {
	return &PresetHandler{store: store}
}

type savePresetRequest struct {
	Name    string             `json:"name"`
	Filters domain.FilterState `json:"filters"`
}

type renamePresetRequest struct {
	Name string `json:"name"`
}

// ListPresets handles GET /api/v1/sales/presets.
func (h *PresetHandler) ListPresets(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list saved filters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved filters"})
		return
	}
	if list == nil {
		list = []domain.SavedFilter{}
	}
	c.JSON(http.StatusOK, gin.H{"filters": list})
}

// SavePreset handles POST /api/v1/sales/presets.
func (h *PresetHandler) SavePreset(c *gin.Context) {
	var req savePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter name is required"})
		return
	}

	saved, err := h.store.Save(c.Request.Context(), req.Name, req.Filters)
	if err != nil {
		log.Error().Err(err).Msg("failed to save filter")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save filter"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// RenamePreset handles PUT /api/v1/sales/presets/:id/name.
func (h *PresetHandler) RenamePreset(c *gin.Context) {
	var req renamePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter name is required"})
		return
	}

	if err := h.store.Rename(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		h.storeError(c, err, "failed to rename filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "filter renamed"})
}

// DeletePreset handles DELETE /api/v1/sales/presets/:id.
func (h *PresetHandler) DeletePreset(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "failed to delete filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "filter deleted"})
}

// SetDefaultPreset handles PUT /api/v1/sales/presets/:id/default.
func (h *PresetHandler) SetDefaultPreset(c *gin.Context) {
	if err := h.store.SetDefault(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "failed to set default filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default filter updated"})
}

func (h *PresetHandler) storeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, presets.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "saved filter not found"})
		return
	}
	log.Error().Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
