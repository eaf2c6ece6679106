package envvars

import (
	"fmt"

	"bidtrack/internal/envsync"
	"bidtrack/internal/httpx"

	"github.com/gin-gonic/gin"
)

// Handler handles environment variable management requests
type Handler struct {
	engine *envsync.Engine
}

// NewHandler creates a new env var handler
func NewHandler(engine *envsync.Engine) *Handler {
	return &Handler{engine: engine}
}

// List handles GET /api/v1/env-vars. It reflects the cache view only;
// durable entries that were never cached do not appear.
func (h *Handler) List(c *gin.Context) {
	vars, err := h.engine.GetAll(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to list env vars", err))
		return
	}

	httpx.OK(c, gin.H{
		"env_vars": vars,
		"count":    len(vars),
	})
}

// Stats handles GET /api/v1/env-vars/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to compute stats", err))
		return
	}
	httpx.OK(c, stats)
}

// Get handles GET /api/v1/env-vars/:key
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("key")

	value, found, err := h.engine.Get(c.Request.Context(), key)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to get env var", err))
		return
	}
	if !found {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("env var %q not found", key)))
		return
	}

	httpx.OK(c, gin.H{"key": key, "value": value})
}

// SetRequest represents the body for Set
type SetRequest struct {
	Value *string `json:"value" binding:"required"`
}

// Set handles PUT /api/v1/env-vars/:key
func (h *Handler) Set(c *gin.Context) {
	key := c.Param("key")

	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	if !h.engine.Set(c.Request.Context(), key, *req.Value) {
		httpx.FailErr(c, httpx.ErrOperationFail(fmt.Sprintf("failed to set env var %q", key)))
		return
	}

	httpx.OKMsg(c, fmt.Sprintf("env var %q set", key), nil)
}

// CreateRequest represents the body for Create
type CreateRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

// Create handles POST /api/v1/env-vars
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	_, exists, err := h.engine.Get(c.Request.Context(), req.Key)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to check env var", err))
		return
	}
	if exists {
		httpx.FailErr(c, httpx.ErrAlreadyExists(fmt.Sprintf("env var %q already exists", req.Key)))
		return
	}

	if !h.engine.Set(c.Request.Context(), req.Key, *req.Value) {
		httpx.FailErr(c, httpx.ErrOperationFail(fmt.Sprintf("failed to create env var %q", req.Key)))
		return
	}

	httpx.Created(c, fmt.Sprintf("env var %q created", req.Key), nil)
}

// BulkSetRequest represents the body for BulkSet
type BulkSetRequest struct {
	EnvVars map[string]string `json:"env_vars" binding:"required"`
}

// BulkSet handles POST /api/v1/env-vars/bulk. Partial failure is
// tolerated: the count reports how many entries succeeded.
func (h *Handler) BulkSet(c *gin.Context) {
	var req BulkSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	count := h.engine.SetMany(c.Request.Context(), req.EnvVars)
	httpx.OKMsg(c, fmt.Sprintf("%d env vars set", count), gin.H{"count": count})
}

// Delete handles DELETE /api/v1/env-vars/:key
func (h *Handler) Delete(c *gin.Context) {
	key := c.Param("key")

	if !h.engine.Delete(c.Request.Context(), key) {
		httpx.FailErr(c, httpx.ErrNotFound(fmt.Sprintf("env var %q not found", key)))
		return
	}

	httpx.OKMsg(c, fmt.Sprintf("env var %q deleted", key), nil)
}

// SyncStoreToCache handles POST /api/v1/env-vars/sync/store-to-cache
func (h *Handler) SyncStoreToCache(c *gin.Context) {
	count, err := h.engine.SyncStoreToCache(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to sync store to cache", err))
		return
	}
	httpx.OKMsg(c, fmt.Sprintf("%d env vars synced to cache", count), gin.H{"count": count})
}

// SyncCacheToStore handles POST /api/v1/env-vars/sync/cache-to-store
func (h *Handler) SyncCacheToStore(c *gin.Context) {
	count, err := h.engine.SyncCacheToStore(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to sync cache to store", err))
		return
	}
	httpx.OKMsg(c, fmt.Sprintf("%d env vars synced to store", count), gin.H{"count": count})
}

// ClearCache handles DELETE /api/v1/env-vars/cache
func (h *Handler) ClearCache(c *gin.Context) {
	count, err := h.engine.ClearCache(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to clear cache", err))
		return
	}
	httpx.OKMsg(c, fmt.Sprintf("%d env vars cleared from cache", count), gin.H{"count": count})
}
