package types

import "time"

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProfileResponse struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	RelationshipID *uint          `json:"relationship_id"`
	InviteCode     *string        `json:"invite_code"`
	ThemeConfig    map[string]any `json:"theme_config,omitempty"`
}

type EntryResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	RelationshipID uint      `json:"relationship_id"`
	Content        string    `json:"content"`
	IsPrivate      bool      `json:"is_private"`
	WordCount      int       `json:"word_count"`
	CharCount      int       `json:"char_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
