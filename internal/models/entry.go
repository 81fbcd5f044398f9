package models

import "time"

// Entry is a single diary post. No gorm.DeletedAt here: entry deletes are
// hard deletes, there is no tombstone to resurrect.
type Entry struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	UserID         uint   `gorm:"not null;index"`
	RelationshipID uint   `gorm:"not null;index"`
	Content        string
	IsPrivate      bool   `gorm:"not null;default:false"`
	WordCount      int    `gorm:"not null;default:0"`
	CharCount      int    `gorm:"not null;default:0"`
}
