// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogRepository defines persistence operations for blogs and their likes.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	List(ctx context.Context, limit, offset int) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, blogID, userID uint) error
	Unlike(ctx context.Context, blogID, userID uint) error
	CountLikes(ctx context.Context, blogID uint) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogKey(id), &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogSlugKey(slug), &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			Where("slug = ?", slug).
			First(&blog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	// The slug is regenerated on every update; drop the entry cached under
	// the old one so a stale slug does not keep resolving.
	var prev models.Blog
	if err := r.db.WithContext(ctx).Select("slug").First(&prev, blog.ID).Error; err == nil && prev.Slug != blog.Slug {
		cache.Invalidate(ctx, cache.BlogSlugKey(prev.Slug))
	}

	// the preloaded author is read-only here, do not upsert it
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blog.ID, blog.Slug)
	return nil
}

// Delete removes the blog along with its likes and comments in one
// transaction. Reactions and comments do not outlive the blog they reference.
func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	var prev models.Blog
	_ = r.db.WithContext(ctx).Select("slug").First(&prev, id).Error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id, prev.Slug)
	return nil
}

// Like inserts the (blog, user) reaction as a single atomic conditional
// write. Two concurrent likes for the same pair cannot both succeed; the
// loser observes the conflict.
func (r *blogRepository) Like(ctx context.Context, blogID, userID uint) error {
	like := models.Like{BlogID: blogID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blog_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Blog already liked")
	}
	return nil
}

func (r *blogRepository) Unlike(ctx context.Context, blogID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.AppError{Code: models.CodeNotFound, Message: "User has not liked the blog"}
	}
	return nil
}

// CountLikes is a live COUNT over reaction rows, not a maintained counter.
func (r *blogRepository) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
