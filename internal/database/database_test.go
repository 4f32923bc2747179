package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, GetMigrator(db).Migrate())
	return db
}

func TestMigrationsSeedGlossary(t *testing.T) {
	db := openTestDB(t)

	var count int64
	require.NoError(t, db.Model(&GlossaryTerm{}).Count(&count).Error)
	assert.EqualValues(t, 8, count)

	// Re-running the seed leaves the table untouched.
	require.NoError(t, seedGlossary(db))
	require.NoError(t, db.Model(&GlossaryTerm{}).Count(&count).Error)
	assert.EqualValues(t, 8, count)
}

func TestSessionTokenUniqueConstraint(t *testing.T) {
	db := openTestDB(t)

	token := uuid.NewString()
	require.NoError(t, db.Create(&Conversation{Id: uuid.New(), SessionToken: token}).Error)

	err := db.Create(&Conversation{Id: uuid.New(), SessionToken: token}).Error
	assert.Error(t, err)
}
