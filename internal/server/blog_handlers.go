// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBlog handles POST /api/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.CreateBlog(c.Context(), service.CreateBlogInput{
		UserID: currentUserID(c),
		Title:  req.Title,
		Body:   req.Body,
		Image:  req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Blog created successfully", blog)
}

// GetBlogs handles GET /api/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	// A slug query selects a single blog rather than the collection.
	if c.Query("slug") != "" {
		return s.GetBlog(c)
	}

	p := parsePagination(c, 20)

	blogs, err := s.blogService.ListBlogs(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Blogs retrieved successfully", blogs)
}

// GetBlog handles GET /api/blogs/:id? — the blog is selected by the id route
// parameter or by the slug query parameter; one of the two is required.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	in := service.GetBlogInput{Slug: c.Query("slug")}

	if raw := c.Params("id"); raw != "" {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		in.ID = id
	}

	blog, err := s.blogService.GetBlog(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Blog retrieved successfully", blog)
}

// UpdateBlog handles PATCH /api/blogs/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Image string `json:"image"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.UpdateBlog(c.Context(), service.UpdateBlogInput{
		BlogID: id,
		Title:  req.Title,
		Body:   req.Body,
		Image:  req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Blog updated successfully", blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeBlog handles POST /api/blogs/:id/like
func (s *Server) LikeBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.LikeBlog(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Liked!", nil)
}

// UnlikeBlog handles POST /api/blogs/:id/unlike
func (s *Server) UnlikeBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.UnlikeBlog(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Blog unliked!", nil)
}

// GetLikes handles GET /api/blogs/:id/likes
func (s *Server) GetLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.blogService.CountLikes(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Likes counted successfully", count)
}
