package repository

import (
	"context"
	"errors"
	"testing"

	"quill/internal/cache"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
}

func TestBlogRepository_CachedReads(t *testing.T) {
	withCache(t)
	db := setupTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "cached@example.com")
	blog := createTestBlog(t, db, user.ID, "cached-blog-7")

	first, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	_, err = repo.GetBySlug(ctx, "cached-blog-7")
	require.NoError(t, err)

	// A write behind the repository's back is invisible until the cache
	// entry is dropped.
	require.NoError(t, db.Model(&models.Blog{}).Where("id = ?", blog.ID).
		Update("title", "changed behind the cache").Error)
	cachedRead, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, cachedRead.Title)

	// Updating through the repository drops the id entry and both slug
	// entries, old and new.
	first.Title = "New Title"
	first.Slug = "new-title-99"
	require.NoError(t, repo.Update(ctx, first))

	fresh, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", fresh.Title)

	_, err = repo.GetBySlug(ctx, "cached-blog-7")
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	bySlug, err := repo.GetBySlug(ctx, "new-title-99")
	require.NoError(t, err)
	assert.Equal(t, blog.ID, bySlug.ID)
}

func TestBlogRepository_DeleteDropsCacheEntries(t *testing.T) {
	withCache(t)
	db := setupTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "dropped@example.com")
	blog := createTestBlog(t, db, user.ID, "dropped-blog-1")

	_, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	_, err = repo.GetBySlug(ctx, "dropped-blog-1")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, blog.ID))

	var appErr *models.AppError
	_, err = repo.GetByID(ctx, blog.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	_, err = repo.GetBySlug(ctx, "dropped-blog-1")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	withCache(t)
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Hash Keeper", Email: "hash@example.com", Password: "bcrypt-hash", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	warm, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", warm.Password)

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", cached.Password)

	// The second read really was served from the cache.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("name", "renamed behind the cache").Error)
	stillCached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hash Keeper", stillCached.Name)
}
