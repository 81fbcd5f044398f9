package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile carries the pairing state for one user. ID mirrors the user's ID,
// so a profile is created and destroyed with its user.
type Profile struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Username       string         `gorm:"not null"`
	RelationshipID *uint          `gorm:"index"`
	InviteCode     *string        `gorm:"uniqueIndex"`
	ThemeConfig    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Relationship *Relationship `gorm:"foreignKey:RelationshipID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

// Paired reports whether the profile has joined a relationship. Once set,
// RelationshipID is never cleared.
func (p *Profile) Paired() bool {
	return p.RelationshipID != nil
}
