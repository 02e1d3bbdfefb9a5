package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neolink-backend/internal/services"
)

// ThemeRequest selects a preset, or a custom color when Type is "custom"
// and Color is set.
type ThemeRequest struct {
	Type  string `json:"type" binding:"required" example:"custom"`
	Color string `json:"color,omitempty" example:"#12ab34"`
}

// ThemeResponse is the active theme plus the selectable presets.
type ThemeResponse struct {
	Theme   services.Theme   `json:"theme"`
	Presets []services.Theme `json:"presets"`
}

// GetTheme godoc
// @ID          getTheme
// @Summary     Active accent theme
// @Tags        Settings
// @Produce     json
// @Success     200  {object} handlers.ThemeResponse
// @Router      /settings/theme [get]
func (h *Handlers) GetTheme(c *gin.Context) {
	ok(c, http.StatusOK, ThemeResponse{Theme: h.theme.Theme(), Presets: services.Presets()})
}

// PutTheme godoc
// @ID          putTheme
// @Summary     Change the accent theme
// @Description Activates a preset, or a custom #rrggbb color when type is custom and color is given.
// @Tags        Settings
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ThemeRequest  true  "Theme selection"
// @Success     200  {object} handlers.ThemeResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown preset or bad color"
// @Router      /settings/theme [put]
func (h *Handlers) PutTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	var (
		t   services.Theme
		err error
	)
	if strings.EqualFold(strings.TrimSpace(req.Type), services.ThemeCustom) && strings.TrimSpace(req.Color) != "" {
		t, err = h.theme.SetCustom(c.Request.Context(), req.Color)
	} else {
		t, err = h.theme.SetPreset(c.Request.Context(), req.Type)
	}
	if err != nil && !persistWarning(c, err) {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, ThemeResponse{Theme: t, Presets: services.Presets()})
}
