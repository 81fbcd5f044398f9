package pairing

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/shared"
	"gorm.io/gorm"
)

const (
	codeLength      = 6
	codeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5
)

// Service owns invite-code issuance and the two-party join protocol.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IssueInviteCode assigns a fresh invite code to the caller's profile,
// replacing any previous one. Regeneration is allowed at any time.
func (s *Service) IssueInviteCode(callerID uint) (string, error) {
	var profile models.Profile

	if err := s.db.First(&profile, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrUnauthenticated
		}
		return "", err
	}

	// The unique index on profiles.invite_code is the real guard; the
	// pre-check just keeps collisions from surfacing as write errors.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode()

		if err != nil {
			return "", err
		}

		var count int64
		if err := s.db.Model(&models.Profile{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}

		if count > 0 {
			continue
		}

		if err := s.db.Model(&models.Profile{}).Where("id = ?", callerID).Update("invite_code", code).Error; err != nil {
			return "", err
		}

		return code, nil
	}

	return "", fmt.Errorf("could not allocate a unique invite code after %d attempts", maxCodeAttempts)
}

// JoinByCode pairs the caller with the profile owning code. All precondition
// checks run before any write; the relationship creation and both profile
// links run in a single transaction, so a partial link never survives.
func (s *Service) JoinByCode(callerID uint, code string) (uint, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if code == "" {
		return 0, shared.ErrInvalidCode
	}

	var target models.Profile

	if err := s.db.Where("invite_code = ?", code).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.ErrInvalidCode
		}
		return 0, err
	}

	if target.ID == callerID {
		return 0, shared.ErrSelfJoin
	}

	if target.RelationshipID != nil {
		return 0, shared.ErrAlreadyPaired
	}

	var caller models.Profile

	if err := s.db.First(&caller, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.ErrUnauthenticated
		}
		return 0, err
	}

	if caller.RelationshipID != nil {
		return 0, shared.ErrAlreadyPaired
	}

	var relationshipID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		relationship := models.Relationship{Status: models.RelationshipStatusActive}

		if err := tx.Create(&relationship).Error; err != nil {
			return err
		}

		// The relationship_id IS NULL guard makes a concurrent join on
		// either profile roll the whole thing back instead of stealing it.
		result := tx.Model(&models.Profile{}).
			Where("id = ? AND relationship_id IS NULL", target.ID).
			Updates(map[string]interface{}{
				"relationship_id": relationship.ID,
				"invite_code":     nil,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected != 1 {
			return shared.ErrAlreadyPaired
		}

		result = tx.Model(&models.Profile{}).
			Where("id = ? AND relationship_id IS NULL", caller.ID).
			Update("relationship_id", relationship.ID)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected != 1 {
			return shared.ErrAlreadyPaired
		}

		relationshipID = relationship.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, shared.ErrAlreadyPaired) {
			return 0, shared.ErrAlreadyPaired
		}
		return 0, fmt.Errorf("%w: %v", shared.ErrLinkFailure, err)
	}

	return relationshipID, nil
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, codeLength)

	for i, b := range buf {
		out[i] = codeCharset[int(b)%len(codeCharset)]
	}

	return string(out), nil
}
