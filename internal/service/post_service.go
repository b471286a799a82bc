// Package service contains the multi-step mutation and authorization
// logic sitting between HTTP handlers and repositories.
package service

import (
	"context"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

const maxPostLen = 10000

// PostService implements post mutations: create/delete with ownership
// checks, like/unlike toggling, and comment add/remove.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePostInput carries the fields for creating a post.
type CreatePostInput struct {
	UserID uint
	Text   string
}

// CreatePost stamps the author's current name and avatar onto a new post.
// The snapshot is intentional: posts keep the name/avatar the author had
// at creation time even if the account changes later.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: in.UserID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns a post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post after verifying the requester owns it.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records a like for the user. Liking an already-liked post is a
// conflict, never a duplicate row: the insert is conditional on the
// unique (post, user) constraint, so concurrent likes cannot race into
// two entries. Returns the updated like list, newest first.
func (s *PostService) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	inserted, err := s.postRepo.InsertLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewConflictError("Post already liked")
	}

	return s.postRepo.ListLikes(ctx, postID)
}

// Unlike removes the user's like. Unliking a post the user has not liked
// is a conflict and leaves the like list untouched.
func (s *PostService) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	deleted, err := s.postRepo.DeleteLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, models.NewConflictError("Post has not yet been liked")
	}

	return s.postRepo.ListLikes(ctx, postID)
}

// AddCommentInput carries the fields for commenting on a post.
type AddCommentInput struct {
	PostID uint
	UserID uint
	Text   string
}

// AddComment stamps the commenter's name/avatar snapshot onto a new
// comment and returns the post's updated comment list, newest first.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) ([]models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: in.UserID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.ListComments(ctx, in.PostID)
}

// DeleteComment removes a comment after verifying the requester owns it.
// Removal is keyed by the comment's own id, so a requester with several
// comments on the same post always loses exactly the one addressed.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, requesterID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment does not exist")
	}
	if comment.UserID != requesterID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.postRepo.DeleteComment(ctx, comment.ID); err != nil {
		return nil, err
	}

	return s.postRepo.ListComments(ctx, postID)
}
