package entries

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Relationship{},
		&models.Profile{},
		&models.Entry{},
	))

	return db
}

func seedProfile(t *testing.T, db *gorm.DB, username string, relationshipID *uint) uint {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{ID: user.ID, Username: username, RelationshipID: relationshipID}
	require.NoError(t, db.Create(&profile).Error)

	return user.ID
}

// seedPair creates two paired users and returns their ids.
func seedPair(t *testing.T, db *gorm.DB, a, b string) (uint, uint) {
	t.Helper()

	relationship := models.Relationship{Status: models.RelationshipStatusActive}
	require.NoError(t, db.Create(&relationship).Error)

	return seedProfile(t, db, a, &relationship.ID), seedProfile(t, db, b, &relationship.ID)
}

func TestCreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "hello world")
	require.NoError(t, err)

	assert.Equal(t, alice, entry.UserID)
	assert.False(t, entry.IsPrivate, "new entries start shared")
	assert.Equal(t, 2, entry.WordCount)
	assert.Equal(t, 11, entry.CharCount)

	list, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello world", list[0].Content)
	assert.Equal(t, 2, list[0].WordCount)
	assert.Equal(t, 11, list[0].CharCount)
}

func TestCreateRequiresRelationship(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedProfile(t, db, "alice", nil)

	_, err := svc.Create(alice, "hello")
	assert.ErrorIs(t, err, shared.ErrNoRelationship)

	var count int64
	require.NoError(t, db.Model(&models.Entry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVisibilityMatrix(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	author, partner := seedPair(t, db, "alice", "bob")
	_, stranger := seedPair(t, db, "carol", "dave")

	tests := []struct {
		name        string
		private     bool
		reader      uint
		wantVisible bool
	}{
		{"own shared entry", false, author, true},
		{"own private entry", true, author, true},
		{"partner shared entry", false, partner, true},
		{"partner private entry", true, partner, false},
		{"stranger shared entry", false, stranger, false},
		{"stranger private entry", true, stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := svc.Create(author, "the secret garden")
			require.NoError(t, err)

			if tt.private {
				private := true
				_, err = svc.Update(author, entry.ID, UpdateFields{IsPrivate: &private})
				require.NoError(t, err)
			}

			_, err = svc.Get(tt.reader, entry.ID)
			if tt.wantVisible {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, shared.ErrNotFound)
			}

			list, err := svc.List(tt.reader)
			require.NoError(t, err)

			found := false
			for _, e := range list {
				if e.ID == entry.ID {
					found = true
				}
			}
			assert.Equal(t, tt.wantVisible, found)

			require.NoError(t, svc.Delete(author, entry.ID))
		})
	}
}

func TestUpdateRecomputesCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "one")
	require.NoError(t, err)

	content := "one two three"
	updated, err := svc.Update(alice, entry.ID, UpdateFields{Content: &content})
	require.NoError(t, err)

	assert.Equal(t, "one two three", updated.Content)
	assert.Equal(t, 3, updated.WordCount)
	assert.Equal(t, 13, updated.CharCount)
}

func TestUpdatePrivacyOnlyKeepsContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "dear diary")
	require.NoError(t, err)

	private := true
	updated, err := svc.Update(alice, entry.ID, UpdateFields{IsPrivate: &private})
	require.NoError(t, err)

	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "dear diary", updated.Content)
	assert.Equal(t, 2, updated.WordCount)
}

func TestUpdateNonOwnerIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, bob := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "original")
	require.NoError(t, err)

	content := "tampered"
	_, err = svc.Update(bob, entry.ID, UpdateFields{Content: &content})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	var stored models.Entry
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, "original", stored.Content, "ownership must be enforced on the write itself")
}

func TestUpdateMissingEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	content := "x"
	_, err := svc.Update(alice, 999, UpdateFields{Content: &content})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteNonOwnerIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, bob := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "keep me")
	require.NoError(t, err)

	err = svc.Delete(bob, entry.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Entry{}).Where("id = ?", entry.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteIsHard(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	entry, err := svc.Create(alice, "gone soon")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(alice, entry.ID))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Entry{}).Where("id = ?", entry.ID).Count(&count).Error)
	assert.Zero(t, count, "no tombstone may survive a delete")

	err = svc.Delete(alice, entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice, _ := seedPair(t, db, "alice", "bob")

	older, err := svc.Create(alice, "yesterday")
	require.NoError(t, err)
	newer, err := svc.Create(alice, "today")
	require.NoError(t, err)

	// Force distinct timestamps, inserts can land in the same tick.
	require.NoError(t, db.Model(&models.Entry{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	list, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestWordAndCharCounts(t *testing.T) {
	tests := []struct {
		content string
		words   int
		chars   int
	}{
		{"", 0, 0},
		{"   ", 0, 3},
		{"hello world", 2, 11},
		{"one\ntwo\tthree", 3, 13},
		{"héllo wörld", 2, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.words, WordCount(tt.content), "words of %q", tt.content)
		assert.Equal(t, tt.chars, CharCount(tt.content), "chars of %q", tt.content)
	}
}
