package models

import "time"

// Snapshot stores one serialized progress record under a key.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
