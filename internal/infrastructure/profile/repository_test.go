package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	db, err := OpenDB(&config.DatabaseConfig{Path: dbPath})
	require.NoError(t, err)

	repo, err := NewRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestFind_MissingReturnsDefault(t *testing.T) {
	repo := newTestRepository(t)

	profile, err := repo.Find("unknown-user")

	require.NoError(t, err)
	assert.Equal(t, "unknown-user", profile.UserID)
	assert.Equal(t, "beginner", profile.CookingLevel)
	assert.Empty(t, profile.Allergies)
}

func TestSaveAndFind(t *testing.T) {
	repo := newTestRepository(t)

	saved := &chat.UserProfile{
		UserID:       "user-1",
		Allergies:    []string{"땅콩", "갑각류"},
		CookingLevel: "intermediate",
		Preferences:  []string{"한식", "매운맛"},
	}
	require.NoError(t, repo.Save(saved))

	found, err := repo.Find("user-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Allergies, found.Allergies)
	assert.Equal(t, "intermediate", found.CookingLevel)
	assert.Equal(t, saved.Preferences, found.Preferences)
}

func TestSave_Upsert(t *testing.T) {
	repo := newTestRepository(t)

	first := &chat.UserProfile{UserID: "user-2", Allergies: []string{}, CookingLevel: "beginner", Preferences: []string{}}
	require.NoError(t, repo.Save(first))

	first.CookingLevel = "advanced"
	first.Allergies = []string{"우유"}
	require.NoError(t, repo.Save(first))

	found, err := repo.Find("user-2")
	require.NoError(t, err)
	assert.Equal(t, "advanced", found.CookingLevel)
	assert.Equal(t, []string{"우유"}, found.Allergies)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(&chat.UserProfile{
		UserID: "user-3", Allergies: []string{"달걀"}, CookingLevel: "advanced", Preferences: []string{},
	}))
	require.NoError(t, repo.Delete("user-3"))

	found, err := repo.Find("user-3")
	require.NoError(t, err)
	assert.Equal(t, "beginner", found.CookingLevel)
}
