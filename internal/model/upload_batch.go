package model

import (
	"time"

	"gorm.io/datatypes"
)

// UploadBatch records the outcome of one spreadsheet bulk upload
type UploadBatch struct {
	ID          int            `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID     string         `gorm:"column:batch_id;type:varchar(36);uniqueIndex;not null" json:"batch_id"`
	FileName    string         `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	TotalRows   int            `gorm:"column:total_rows" json:"total_rows"`
	Created     int            `gorm:"column:created" json:"created"`
	Skipped     int            `gorm:"column:skipped" json:"skipped"`
	Columns     datatypes.JSON `gorm:"column:columns" json:"columns"`
	SkipReasons datatypes.JSON `gorm:"column:skip_reasons" json:"skip_reasons"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for UploadBatch
func (UploadBatch) TableName() string {
	return "upload_batches"
}
