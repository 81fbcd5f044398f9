package models

import "gorm.io/gorm"

const RelationshipStatusActive = "active"

// Relationship links exactly two profiles. It is created once per successful
// join and only its status may change afterwards.
type Relationship struct {
	gorm.Model

	Status string `gorm:"not null;default:active"`

	// Relationships
	Profiles []Profile `gorm:"foreignKey:RelationshipID"`
}
