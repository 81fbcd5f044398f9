package entries

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/shared"
	"gorm.io/gorm"
)

// Service mediates all entry reads and writes. Visibility and ownership are
// enforced here, in the query itself, never left to callers.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// UpdateFields is a partial update; nil fields are left untouched.
type UpdateFields struct {
	Content   *string
	IsPrivate *bool
}

// Create inserts a new entry for the caller. The author must be paired; the
// relationship id is denormalized from the author's profile and never
// changes afterwards. New entries start shared.
func (s *Service) Create(callerID uint, content string) (*models.Entry, error) {
	var profile models.Profile

	if err := s.db.First(&profile, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}

	if profile.RelationshipID == nil {
		return nil, shared.ErrNoRelationship
	}

	entry := models.Entry{
		UserID:         callerID,
		RelationshipID: *profile.RelationshipID,
		Content:        content,
		IsPrivate:      false,
		WordCount:      WordCount(content),
		CharCount:      CharCount(content),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Update applies a partial update. Ownership is a condition on the write:
// a non-owner's update matches zero rows and changes nothing.
func (s *Service) Update(callerID, entryID uint, fields UpdateFields) (*models.Entry, error) {
	updates := make(map[string]interface{})

	if fields.Content != nil {
		updates["content"] = *fields.Content
		updates["word_count"] = WordCount(*fields.Content)
		updates["char_count"] = CharCount(*fields.Content)
	}

	if fields.IsPrivate != nil {
		updates["is_private"] = *fields.IsPrivate
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Entry{}).
			Where("id = ? AND user_id = ?", entryID, callerID).
			Updates(updates)

		if result.Error != nil {
			return nil, result.Error
		}

		if result.RowsAffected == 0 {
			return nil, s.classifyMiss(entryID)
		}
	}

	var entry models.Entry

	if err := s.db.Where("id = ? AND user_id = ?", entryID, callerID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.classifyMiss(entryID)
		}
		return nil, err
	}

	return &entry, nil
}

// Delete hard-deletes an entry, with ownership as a condition on the delete.
func (s *Service) Delete(callerID, entryID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", entryID, callerID).Delete(&models.Entry{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return s.classifyMiss(entryID)
	}

	return nil
}

// List returns every entry visible to the caller, newest first: their own
// entries plus the partner's shared ones.
func (s *Service) List(callerID uint) ([]models.Entry, error) {
	var profile models.Profile

	if err := s.db.First(&profile, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}

	query := s.db.Order("created_at DESC")

	if profile.RelationshipID != nil {
		query = query.Where(
			"user_id = ? OR (relationship_id = ? AND is_private = ? AND user_id <> ?)",
			callerID, *profile.RelationshipID, false, callerID,
		)
	} else {
		query = query.Where("user_id = ?", callerID)
	}

	var list []models.Entry

	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

// Get fetches a single entry under the same visibility predicate as List.
// Entries outside the caller's view are indistinguishable from absent ones.
func (s *Service) Get(callerID, entryID uint) (*models.Entry, error) {
	var profile models.Profile

	if err := s.db.First(&profile, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}

	query := s.db.Where("id = ?", entryID)

	if profile.RelationshipID != nil {
		query = query.Where(
			"user_id = ? OR (relationship_id = ? AND is_private = ? AND user_id <> ?)",
			callerID, *profile.RelationshipID, false, callerID,
		)
	} else {
		query = query.Where("user_id = ?", callerID)
	}

	var entry models.Entry

	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	return &entry, nil
}

// classifyMiss decides between NotFound and Forbidden after a zero-row
// write. Handlers surface both as a 404, the distinction is internal.
func (s *Service) classifyMiss(entryID uint) error {
	var count int64

	if err := s.db.Model(&models.Entry{}).Where("id = ?", entryID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return shared.ErrNotFound
	}

	return shared.ErrForbidden
}

// WordCount counts whitespace-delimited non-empty tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// CharCount counts runes of the raw content, markup included.
func CharCount(content string) int {
	return utf8.RuneCountInString(content)
}
