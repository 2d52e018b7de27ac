// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// seedPassword is the well-known password shared by all seeded accounts.
const seedPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB

	// bcrypt is slow at cost 12; hash the shared seed password once.
	hashedPassword string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())

	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		// bcrypt only fails on absurd cost values; treat as programmer error.
		panic(err)
	}
	return &Factory{db: db, hashedPassword: hashed}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: f.hashedPassword,
		Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleUser,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateBlog constructs and persists a sample blog authored by the given user.
func (f *Factory) CreateBlog(author *models.User, overrides ...func(*models.Blog)) (*models.Blog, error) {
	title := gofakeit.Sentence(5)
	blog := &models.Blog{
		Title:  title,
		Body:   gofakeit.Paragraph(3, 4, 8, "\n\n"),
		Image:  fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID()),
		Slug:   seedSlug(title),
		UserID: author.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := rand.IntN(90)
	hoursBack := rand.IntN(24)
	blog.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(blog)
	}
	if err := f.db.Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// CreateComment constructs and persists a sample comment on the given blog.
func (f *Factory) CreateComment(blog *models.Blog, author *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Body:   gofakeit.Sentence(12),
		BlogID: blog.ID,
		UserID: author.ID,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// seedSlug mirrors the application's slug shape without pulling in the
// service layer.
func seedSlug(title string) string {
	base := strings.Join(strings.Fields(strings.ToLower(strings.TrimSuffix(title, "."))), "-")
	return fmt.Sprintf("%s-%d", base, rand.IntN(100000))
}
