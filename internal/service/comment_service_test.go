package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByBlogFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	return s.listByBlogFn(ctx, blogID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByBlogFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("empty body", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopBlogRepo())
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, BlogID: 1})
		assertValidationError(t, err, "Comment body is required")
	})

	t.Run("missing blog propagates not found", func(t *testing.T) {
		notFound := models.NewNotFoundError("Blog")
		blogRepo := noopBlogRepo()
		blogRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Blog, error) { return nil, notFound }
		svc := NewCommentService(noopCommentRepo(), blogRepo)

		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, BlogID: 99, Body: "hi"})
		assert.ErrorIs(t, err, notFound)
	})

	t.Run("success reloads with author", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			return nil
		}
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Body: "hi", User: models.User{ID: 1, Name: "Author"}}, nil
		}
		svc := NewCommentService(commentRepo, noopBlogRepo())

		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, BlogID: 1, Body: "hi"})
		require.NoError(t, err)
		assert.Equal(t, uint(42), comment.ID)
		assert.Equal(t, "Author", comment.User.Name)
	})
}

func TestCommentService_ListComments_GatesOnBlog(t *testing.T) {
	ctx := context.Background()
	notFound := models.NewNotFoundError("Blog")
	blogRepo := noopBlogRepo()
	blogRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Blog, error) { return nil, notFound }
	svc := NewCommentService(noopCommentRepo(), blogRepo)

	_, err := svc.ListComments(ctx, 99)
	assert.ErrorIs(t, err, notFound)
}

func TestCommentService_DeleteComment_GatesOnComment(t *testing.T) {
	ctx := context.Background()
	notFound := models.NewNotFoundError("Comment")
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return nil, notFound
	}
	deleted := false
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewCommentService(commentRepo, noopBlogRepo())

	err := svc.DeleteComment(ctx, 99)
	assert.ErrorIs(t, err, notFound)
	assert.False(t, deleted)
}

func TestCommentService_DeleteComment_Success(t *testing.T) {
	ctx := context.Background()
	var deletedID uint
	commentRepo := noopCommentRepo()
	commentRepo.deleteFn = func(_ context.Context, id uint) error {
		deletedID = id
		return nil
	}
	svc := NewCommentService(commentRepo, noopBlogRepo())

	require.NoError(t, svc.DeleteComment(ctx, 7))
	assert.Equal(t, uint(7), deletedID)
}
