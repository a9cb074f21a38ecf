package gormdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/models"
)

// setupTestDB создает SQLite в памяти и выполняет миграции
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := InitDB(DialectSQLite, ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory SQLite")
	db.LogMode(false)

	require.NoError(t, Migrate(db), "Failed to migrate database schema")
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, NewUserGormStorage(db).CreateUser(context.Background(), u))
	return u
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, text string) *models.Post {
	t.Helper()

	p := &models.Post{Text: text, AuthorID: authorID}
	require.NoError(t, NewPostGormStorage(db).CreatePost(context.Background(), p))
	return p
}

func TestInitDB(t *testing.T) {
	t.Run("Unknown dialect", func(t *testing.T) {
		_, err := InitDB("oracle", "")
		assert.Error(t, err)
	})

	t.Run("Migrate is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		assert.NoError(t, Migrate(db))

		for _, table := range []string{"users", "groups", "posts", "comments", "follows"} {
			assert.True(t, db.HasTable(table), fmt.Sprintf("table %s", table))
		}
	})
}

func TestCloseDBWithNilDB(t *testing.T) {
	assert.NoError(t, CloseDB(nil))
}
