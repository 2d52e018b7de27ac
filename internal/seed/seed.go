// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand/v2"

	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls how much data a seed run generates.
type Options struct {
	Users           int
	Blogs           int
	CommentsPerBlog int
	LikesPerBlog    int
}

// DefaultOptions is a small data set suitable for local development.
func DefaultOptions() Options {
	return Options{
		Users:           10,
		Blogs:           25,
		CommentsPerBlog: 4,
		LikesPerBlog:    5,
	}
}

// Run populates the database with a full sample data set: users (one admin
// included), blogs, comments and likes.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	admin, err := f.CreateUser(func(u *models.User) {
		u.Name = "Admin"
		u.Email = "admin@quill.dev"
		u.Role = models.RoleAdmin
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Printf("seeded admin user %s (id %d)", admin.Email, admin.ID)

	users := []*models.User{admin}
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.Blogs; i++ {
		author := users[rand.IntN(len(users))]
		blog, err := f.CreateBlog(author)
		if err != nil {
			return fmt.Errorf("seed blog: %w", err)
		}

		for j := 0; j < opts.CommentsPerBlog; j++ {
			commenter := users[rand.IntN(len(users))]
			if _, err := f.CreateComment(blog, commenter); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}

		likes := rand.IntN(opts.LikesPerBlog + 1)
		for j := 0; j < likes; j++ {
			liker := users[rand.IntN(len(users))]
			if err := f.LikeBlog(blog, liker); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
	}

	log.Printf("seeded %d users, %d blogs", len(users), opts.Blogs)
	return nil
}

// LikeBlog records a like for the pair, silently skipping duplicates so a
// random liker can repeat.
func (f *Factory) LikeBlog(blog *models.Blog, user *models.User) error {
	like := models.Like{BlogID: blog.ID, UserID: user.ID}
	return f.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blog_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
}
