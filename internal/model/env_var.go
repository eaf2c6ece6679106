package model

import "time"

// EnvVar represents a dynamic configuration entry. MySQL holds the
// durable copy; Redis mirrors it under the "env:" namespace.
type EnvVar struct {
	Key       string    `gorm:"column:key;primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for EnvVar
func (EnvVar) TableName() string {
	return "env_vars"
}
