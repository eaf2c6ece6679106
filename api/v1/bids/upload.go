package bids

import (
	"encoding/json"
	"errors"
	"fmt"

	"bidtrack/internal/httpx"
	"bidtrack/internal/ingest"
	"bidtrack/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Upload handles POST /api/v1/bids/upload. It ingests a CSV file,
// bulk-creates the resulting records (skipping per-row problems), and
// persists an UploadBatch report. With ?replace=1 all existing bids
// are deleted first.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to open upload", err))
		return
	}
	defer f.Close()

	table, err := ingest.ReadCSV(f)
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(fmt.Sprintf("failed to parse CSV: %v", err)))
		return
	}

	records, err := ingest.Process(table)
	if err != nil {
		var schemaErr *ingest.SchemaError
		if errors.As(err, &schemaErr) {
			httpx.FailErr(c, httpx.ErrSchemaInvalid(schemaErr.Error()).WithData(gin.H{
				"missing_fields":   schemaErr.MissingFields,
				"expected_headers": schemaErr.MissingHeaders,
				"columns":          schemaErr.Columns,
			}))
			return
		}
		httpx.FailErr(c, httpx.ErrInternalError("ingestion failed", err))
		return
	}

	if c.Query("replace") == "1" {
		removed, err := h.svc.DeleteAll()
		if err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to clear existing bids", err))
			return
		}
		logrus.Infof("replace upload: removed %d existing bids", removed)
	}

	result, err := h.svc.BulkCreate(records)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("bulk create failed", err))
		return
	}

	batch := &model.UploadBatch{
		BatchID:   uuid.New().String(),
		FileName:  fileHeader.Filename,
		TotalRows: result.Total,
		Created:   result.Created,
		Skipped:   result.Skipped,
	}
	if cols, err := json.Marshal(table.Columns); err == nil {
		batch.Columns = datatypes.JSON(cols)
	}
	if reasons, err := json.Marshal(result.Reasons); err == nil {
		batch.SkipReasons = datatypes.JSON(reasons)
	}
	if err := h.db.Create(batch).Error; err != nil {
		// The upload itself succeeded; losing the report is not fatal
		logrus.Errorf("failed to persist upload batch report: %v", err)
	}

	httpx.OKMsg(c, fmt.Sprintf("%d bids created, %d skipped", result.Created, result.Skipped), gin.H{
		"batch_id": batch.BatchID,
		"result":   result,
	})
}

// Uploads handles GET /api/v1/bids/uploads, returning recent batches
func (h *Handler) Uploads(c *gin.Context) {
	var batches []model.UploadBatch
	if err := h.db.Order("id DESC").Limit(50).Find(&batches).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list upload batches", err))
		return
	}
	httpx.OK(c, batches)
}
