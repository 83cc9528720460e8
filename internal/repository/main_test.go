package repository

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema
// applied. The Redis client is left unset so cache-aside helpers fall
// through to the database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: name, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, user *models.User, content string, ts int64) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:    user.ID,
		UserName:  user.Name,
		Content:   content,
		Timestamp: ts,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
