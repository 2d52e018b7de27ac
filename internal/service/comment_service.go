package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
}

type CreateCommentInput struct {
	UserID uint
	BlogID uint
	Body   string
}

func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Body == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if _, err := s.blogRepo.GetByID(ctx, in.BlogID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   in.Body,
		BlogID: in.BlogID,
		UserID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByBlog(ctx, blogID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
