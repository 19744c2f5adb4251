package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedsvc/internal/db"
	"feedsvc/internal/model"
)

func newGormDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "feed.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.MigrateMySQL(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newGormDB(t))
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hash", FullName: "Alice"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Len(t, user.ID, 36)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
	assert.Equal(t, "Alice", found.FullName)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newGormDB(t))
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hash", FullName: "Alice", ProfilePhoto: "a.png"}
	require.NoError(t, repo.Create(ctx, user))

	name := "Alice Liddell"
	updated, err := repo.Update(ctx, user.ID, model.UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.FullName)
	assert.Equal(t, "a.png", updated.ProfilePhoto)
	assert.Equal(t, "hash", updated.PasswordHash)

	photo := "b.png"
	updated, err = repo.Update(ctx, user.ID, model.UserUpdate{ProfilePhoto: &photo})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.FullName)
	assert.Equal(t, "b.png", updated.ProfilePhoto)

	unchanged, err := repo.Update(ctx, user.ID, model.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "b.png", unchanged.ProfilePhoto)

	_, err = repo.Update(ctx, "00000000-0000-0000-0000-000000000000", model.UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUserRepository_ListByCreatedDesc(t *testing.T) {
	repo := NewUserRepository(newGormDB(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		name   string
		offset time.Duration
	}{
		{"first", 0},
		{"third", 2 * time.Hour},
		{"second", time.Hour},
	}
	for _, s := range seed {
		require.NoError(t, repo.Create(ctx, &model.User{Username: s.name, PasswordHash: "h", CreatedAt: base.Add(s.offset)}))
	}

	users, err := repo.ListByCreatedDesc(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{users[0].Username, users[1].Username, users[2].Username})
}

func TestGormPostRepository(t *testing.T) {
	repo := NewPostRepository(newGormDB(t))
	ctx := context.Background()

	empty, err := repo.ListByTimestampDesc(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	posts := []*model.Post{
		{Username: "alice", PostImage: "old.png", Caption: "old", Timestamp: base},
		{Username: "alice", PostImage: "new.png", Caption: "new", Likes: 4, Timestamp: base.Add(48 * time.Hour)},
		{Username: "bob", PostImage: "mid.png", Caption: "mid", Timestamp: base.Add(24 * time.Hour)},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
		assert.Len(t, p.ID, 36)
	}

	listed, err := repo.ListByTimestampDesc(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{listed[0].Caption, listed[1].Caption, listed[2].Caption})
	assert.Equal(t, 4, listed[0].Likes)
	assert.Equal(t, "new.png", listed[0].PostImage)
	assert.True(t, listed[0].Timestamp.Equal(base.Add(48*time.Hour)))
}
