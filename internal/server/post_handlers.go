package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID: userID(c),
		Text:   req.Text,
	})
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(post)
}

// GetPosts handles GET /api/posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), postID, userID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id and returns the updated like list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	likes, err := s.postService.Like(c.Context(), postID, userID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id and returns the updated like list.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	likes, err := s.postService.Unlike(c.Context(), postID, userID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id and returns the post's
// comment list, newest first.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.postService.AddComment(c.Context(), service.AddCommentInput{
		PostID: postID,
		UserID: userID(c),
		Text:   req.Text,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id. Only the
// comment's author may delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "comment_id", "Comment does not exist")
	if err != nil {
		return nil
	}

	comments, err := s.postService.DeleteComment(c.Context(), postID, commentID, userID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(comments)
}
