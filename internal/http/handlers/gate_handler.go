package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GateStatus reports whether add and delete are currently refused.
type GateStatus struct {
	Locked bool `json:"locked" example:"true"`
}

// UnlockRequest carries the admin PIN.
type UnlockRequest struct {
	PIN string `json:"pin" binding:"required" example:"2026"`
}

// GetGate godoc
// @ID          getGate
// @Summary     Access gate state
// @Tags        Gate
// @Produce     json
// @Success     200  {object} handlers.GateStatus
// @Router      /gate [get]
func (h *Handlers) GetGate(c *gin.Context) {
	ok(c, http.StatusOK, GateStatus{Locked: h.gate.Locked()})
}

// LockGate godoc
// @ID          lockGate
// @Summary     Engage the access gate
// @Description Always succeeds; add and delete are refused until unlocked.
// @Tags        Gate
// @Produce     json
// @Success     200  {object} handlers.GateStatus
// @Router      /gate/lock [post]
func (h *Handlers) LockGate(c *gin.Context) {
	h.gate.Lock()
	ok(c, http.StatusOK, GateStatus{Locked: true})
}

// UnlockGate godoc
// @ID          unlockGate
// @Summary     Release the access gate
// @Description Exact match against the configured 4-digit PIN. A wrong PIN keeps the gate locked.
// @Tags        Gate
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UnlockRequest  true  "Admin PIN"
// @Success     200  {object} handlers.GateStatus
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Invalid PIN"
// @Router      /gate/unlock [post]
func (h *Handlers) UnlockGate(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if err := h.gate.Unlock(req.PIN); err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, GateStatus{Locked: false})
}
