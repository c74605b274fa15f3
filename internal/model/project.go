package model

import "time"

// Project is a named container of tasks. Names are unique across all
// projects; comparison is case-insensitive and enforced by the service
// layer, with the unique index below as a backstop.
type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tasks       []Task `gorm:"foreignKey:ProjectID"`
}
