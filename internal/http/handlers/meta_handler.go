package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neolink-backend/internal/domain"
	"github.com/tbourn/neolink-backend/internal/search"
)

// DepartmentsResponse lists the department choices offered to clients.
type DepartmentsResponse struct {
	Departments []domain.Department `json:"departments"`
	// Other is the value that requires customDepartment.
	Other domain.Department `json:"other"`
	// All is the filter sentinel accepted by GET /contacts.
	All string `json:"all"`
}

// StatsResponse summarizes the collection and what is persisted for it.
type StatsResponse struct {
	search.Summary
	Revision      uint64     `json:"revision"`
	StoreKey      string     `json:"storeKey,omitempty"`
	StoredBytes   int64      `json:"storedBytes"`
	LastPersisted *time.Time `json:"lastPersisted,omitempty"`
}

// ListDepartments godoc
// @ID          listDepartments
// @Summary     Department choices
// @Tags        Meta
// @Produce     json
// @Success     200  {object} handlers.DepartmentsResponse
// @Router      /departments [get]
func (h *Handlers) ListDepartments(c *gin.Context) {
	ok(c, http.StatusOK, DepartmentsResponse{
		Departments: domain.Departments(),
		Other:       domain.DepartmentOther,
		All:         domain.DepartmentAll,
	})
}

// Stats godoc
// @ID          getStats
// @Summary     Collection statistics
// @Description Totals per department and favorites, plus the persisted size and write time of the collection.
// @Tags        Meta
// @Produce     json
// @Success     200  {object} handlers.StatsResponse
// @Failure     500  {object} handlers.ErrorResponse "Storage error"
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	resp := StatsResponse{
		Summary:  search.Summarize(h.store.Snapshot()),
		Revision: h.store.Revision(),
	}
	if h.opts.Stats != nil && h.opts.StoreKey != "" {
		size, at, err := h.opts.Stats.Stats(c.Request.Context(), h.opts.StoreKey)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to read storage stats")
			return
		}
		resp.StoreKey = h.opts.StoreKey
		resp.StoredBytes = size
		resp.LastPersisted = at
	}
	ok(c, http.StatusOK, resp)
}
