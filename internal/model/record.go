package model

import (
	"time"

	"gorm.io/datatypes"
)

// Record is one stored document of the development resource store. The body is the
// record exactly as clients sent it, with its id field set.
type Record struct {
	Collection string         `gorm:"primaryKey;size:64"`
	ID         string         `gorm:"primaryKey;size:64"`
	Seq        int64          `gorm:"not null;index"` // Insertion order within the collection
	Body       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}
