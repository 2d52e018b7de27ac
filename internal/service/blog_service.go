package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/storage"
)

type BlogService struct {
	blogRepo repository.BlogRepository
	store    storage.ObjectStore
}

type CreateBlogInput struct {
	UserID uint
	Title  string
	Body   string
	Image  string
}

type GetBlogInput struct {
	ID   uint
	Slug string
}

type UpdateBlogInput struct {
	BlogID uint
	Title  string
	Body   string
	Image  string
}

func NewBlogService(blogRepo repository.BlogRepository, store storage.ObjectStore) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		store:    store,
	}
}

// makeSlug derives a URL-safe identifier from the title: lower-cased,
// whitespace collapsed to hyphens, with a random decimal suffix. Collision
// avoidance is probabilistic; the slug column is deliberately not unique.
func makeSlug(title string) string {
	base := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	return fmt.Sprintf("%s-%d", base, rand.IntN(100000))
}

// uploadImage pushes the client-supplied payload to the object store and
// returns the durable URL. With no store configured the payload is kept
// verbatim.
func (s *BlogService) uploadImage(ctx context.Context, key, payload string) (string, error) {
	if s.store == nil {
		return payload, nil
	}
	data, contentType, err := storage.DecodePayload(payload)
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if in.Title == "" || in.Body == "" || in.Image == "" {
		return nil, models.NewValidationError("All fields are required")
	}

	slug := makeSlug(in.Title)

	imageURL, err := s.uploadImage(ctx, "blogs/"+slug, in.Image)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:  in.Title,
		Body:   in.Body,
		Image:  imageURL,
		Slug:   slug,
		UserID: in.UserID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) ListBlogs(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	return s.blogRepo.List(ctx, limit, offset)
}

// GetBlog resolves a blog by id or by slug. Exactly one selector must be
// supplied.
func (s *BlogService) GetBlog(ctx context.Context, in GetBlogInput) (*models.Blog, error) {
	switch {
	case in.ID == 0 && in.Slug == "":
		return nil, models.NewValidationError("Blog id or slug required")
	case in.Slug != "":
		return s.blogRepo.GetBySlug(ctx, in.Slug)
	default:
		return s.blogRepo.GetByID(ctx, in.ID)
	}
}

// UpdateBlog applies a partial update. Omitted fields keep their stored
// values; the slug is re-derived from the effective title on every update.
func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		blog.Title = in.Title
	}
	if in.Body != "" {
		blog.Body = in.Body
	}
	blog.Slug = makeSlug(blog.Title)

	if in.Image != "" {
		imageURL, err := s.uploadImage(ctx, "blogs/"+blog.Slug, in.Image)
		if err != nil {
			return nil, err
		}
		blog.Image = imageURL
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uint) error {
	if _, err := s.blogRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, id)
}

func (s *BlogService) LikeBlog(ctx context.Context, blogID, userID uint) error {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return err
	}
	return s.blogRepo.Like(ctx, blogID, userID)
}

func (s *BlogService) UnlikeBlog(ctx context.Context, blogID, userID uint) error {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return err
	}
	return s.blogRepo.Unlike(ctx, blogID, userID)
}

func (s *BlogService) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return 0, err
	}
	return s.blogRepo.CountLikes(ctx, blogID)
}
