package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /api/posts?page=N, the paginated landing view of all
// posts, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	listing, err := s.feedService.Index(c.Context(), page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listing)
}

// GetPost handles GET /api/posts/:id, the post detail view. It carries the
// post, its comment thread and the author's total post count.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	ctx := c.Context()

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	authorPostCount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":              post,
		"comments":          comments,
		"author_post_count": authorPostCount,
		// Blank comment form descriptor so clients can render the reply
		// box straight from the detail payload.
		"comment_form": fiber.Map{
			"action": postDetailURL(id) + "/comments",
			"method": fiber.MethodPost,
			"fields": fiber.Map{"text": ""},
		},
	})
}

// CreatePost handles POST /api/posts. On success it redirects to the
// author's profile, where the new post now appears.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text     string `json:"text"`
		GroupID  *uint  `json:"group_id,omitempty"`
		ImageURL string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return seeOther(c, profileURL(post.Author.Username))
}

// UpdatePost handles PUT /api/posts/:id. The author is redirected to the
// updated detail view. Anyone else is redirected there too, with the post
// left exactly as it was: an edit by a non-author is refused without
// ceremony, not announced with an error page.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text     string `json:"text"`
		GroupID  *uint  `json:"group_id,omitempty"`
		ImageURL string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   userID,
		PostID:   id,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if models.IsForbidden(err) {
			return seeOther(c, postDetailURL(id))
		}
		return respondServiceError(c, err)
	}

	return seeOther(c, postDetailURL(id))
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	admin, err := s.isAdmin(c, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID:  userID,
		PostID:  id,
		IsAdmin: admin,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// FollowFeed handles GET /api/feed?page=N: posts by the authors the current
// user follows.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	listing, err := s.feedService.Feed(c.Context(), userID, page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listing)
}
