package repository

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and their
// like and comment collections.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error

	InsertLike(ctx context.Context, postID, userID uint) (bool, error)
	DeleteLike(ctx context.Context, postID, userID uint) (bool, error)
	ListLikes(ctx context.Context, postID uint) ([]models.Like, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("insert", "posts", time.Now())

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())

	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails preloads like and comment collections, newest first,
// matching the prepend ordering of the API contract.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "posts", time.Now())

	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// InsertLike adds a like atomically. The unique (post_id, user_id) index
// plus ON CONFLICT DO NOTHING makes concurrent duplicate likes impossible;
// the returned bool reports whether a row was actually inserted.
func (r *postRepository) InsertLike(ctx context.Context, postID, userID uint) (bool, error) {
	defer observability.ObserveQuery("insert", "likes", time.Now())

	like := models.Like{PostID: postID, UserID: userID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteLike removes a user's like. The returned bool reports whether a
// like existed.
func (r *postRepository) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	defer observability.ObserveQuery("delete", "likes", time.Now())

	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *postRepository) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	defer observability.ObserveQuery("select", "likes", time.Now())

	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	defer observability.ObserveQuery("insert", "comments", time.Now())

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.ObserveQuery("select", "comments", time.Now())

	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "comments", time.Now())

	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	defer observability.ObserveQuery("select", "comments", time.Now())

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
