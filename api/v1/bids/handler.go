package bids

import (
	"errors"
	"fmt"
	"strconv"

	"bidtrack/internal/bids"
	"bidtrack/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles bid record requests
type Handler struct {
	svc *bids.Service
	db  *gorm.DB
}

// NewHandler creates a new bid handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: bids.NewService(db), db: db}
}

// pagination parses skip/limit query params with the original API's
// bounds (skip >= 0, 1 <= limit <= 1000).
func pagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		limit = 100
	}
	return skip, limit
}

// List handles GET /api/v1/bids
func (h *Handler) List(c *gin.Context) {
	skip, limit := pagination(c)

	items, total, err := h.svc.List(skip, limit)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list bids", err))
		return
	}

	httpx.OK(c, gin.H{"total": total, "items": items})
}

// Search handles GET /api/v1/bids/search
func (h *Handler) Search(c *gin.Context) {
	skip, limit := pagination(c)

	items, total, err := h.svc.Search(bids.SearchParams{
		Keyword:      c.Query("keyword"),
		Organization: c.Query("organization"),
		Industry:     c.Query("industry"),
		Region:       c.Query("region"),
		Skip:         skip,
		Limit:        limit,
	})
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to search bids", err))
		return
	}

	httpx.OK(c, gin.H{"total": total, "items": items})
}

// Statistics handles GET /api/v1/bids/statistics
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to compute statistics", err))
		return
	}
	httpx.OK(c, stats)
}

// Organizations handles GET /api/v1/bids/filters/organizations
func (h *Handler) Organizations(c *gin.Context) {
	h.filter(c, h.svc.Organizations)
}

// Industries handles GET /api/v1/bids/filters/industries
func (h *Handler) Industries(c *gin.Context) {
	h.filter(c, h.svc.Industries)
}

// Regions handles GET /api/v1/bids/filters/regions
func (h *Handler) Regions(c *gin.Context) {
	h.filter(c, h.svc.Regions)
}

func (h *Handler) filter(c *gin.Context, fn func() ([]string, error)) {
	values, err := fn()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list filter values", err))
		return
	}
	httpx.OK(c, values)
}

// Get handles GET /api/v1/bids/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid bid id"))
		return
	}

	bid, err := h.svc.GetByID(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get bid", err))
		return
	}
	if bid == nil {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("bid %d not found", id)))
		return
	}
	httpx.OK(c, bid)
}

// GetByNumber handles GET /api/v1/bids/number/:number
func (h *Handler) GetByNumber(c *gin.Context) {
	number := c.Param("number")

	bid, err := h.svc.GetByNumber(number)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get bid", err))
		return
	}
	if bid == nil {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("bid number %q not found", number)))
		return
	}
	httpx.OK(c, bid)
}

// Create handles POST /api/v1/bids
func (h *Handler) Create(c *gin.Context) {
	var req CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	bid, err := req.toBid()
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	if err := h.svc.Create(bid); err != nil {
		if errors.Is(err, bids.ErrDuplicateNumber) {
			httpx.FailErr(c, httpx.ErrAlreadyExists(fmt.Sprintf("bid number %q already exists", bid.BidNumber)))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create bid", err))
		return
	}

	httpx.Created(c, fmt.Sprintf("bid %q created", bid.Title), bid)
}

// Update handles PUT /api/v1/bids/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid bid id"))
		return
	}

	var req UpdateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	updates, err := req.updates()
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	bid, err := h.svc.Update(id, updates)
	if err != nil {
		if errors.Is(err, bids.ErrDuplicateNumber) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("bid number already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update bid", err))
		return
	}
	if bid == nil {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("bid %d not found", id)))
		return
	}

	httpx.OKMsg(c, fmt.Sprintf("bid %q updated", bid.Title), bid)
}

// Delete handles DELETE /api/v1/bids/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid bid id"))
		return
	}

	deleted, err := h.svc.Delete(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete bid", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("bid %d not found", id)))
		return
	}

	httpx.OKMsg(c, fmt.Sprintf("bid %d deleted", id), nil)
}
