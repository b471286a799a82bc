package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	listFn           func(context.Context) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	insertLikeFn     func(context.Context, uint, uint) (bool, error)
	deleteLikeFn     func(context.Context, uint, uint) (bool, error)
	listLikesFn      func(context.Context, uint) ([]models.Like, error)
	createCommentFn  func(context.Context, *models.Comment) error
	getCommentFn     func(context.Context, uint) (*models.Comment, error)
	deleteCommentFn  func(context.Context, uint) error
	listCommentsFn   func(context.Context, uint) ([]models.Comment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) InsertLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.insertLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.deleteLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.listLikesFn(ctx, postID)
}
func (s *postRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *postRepoStub) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, id)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, id uint) error {
	return s.deleteCommentFn(ctx, id)
}
func (s *postRepoStub) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listCommentsFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		insertLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		listLikesFn:  func(_ context.Context, _ uint) ([]models.Like, error) { return nil, nil },
		createCommentFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		deleteCommentFn: func(_ context.Context, _ uint) error { return nil },
		listCommentsFn:  func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "John Doe", Avatar: "https://gravatar/x"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "   "})
		assertAppError(t, err, models.CodeValidation, "Text is required")
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: strings.Repeat("x", 10001)})
		assertAppError(t, err, models.CodeValidation, "Post too long (max 10000 characters)")
	})

	t.Run("stamps author snapshot", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		var created *models.Post
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 7
			created = p
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return created, nil
		}

		svc := NewPostService(postRepo, noopUserRepo())
		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), post.ID)
		assert.Equal(t, "John Doe", post.Name)
		assert.Equal(t, "https://gravatar/x", post.Avatar)
	})
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	svc := NewPostService(postRepo, noopUserRepo())

	err := svc.DeletePost(ctx, 5, 2)
	assertAppError(t, err, models.CodeForbidden, "User not authorized")

	assert.NoError(t, svc.DeletePost(ctx, 5, 1))
}

func TestPostService_Like(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post not found")
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.Like(ctx, 99, 1)
		assertAppError(t, err, models.CodeNotFound, "Post not found")
	})

	t.Run("second like conflicts", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.insertLikeFn = func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.Like(ctx, 5, 1)
		assertAppError(t, err, models.CodeConflict, "Post already liked")
	})

	t.Run("returns like list", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.listLikesFn = func(_ context.Context, _ uint) ([]models.Like, error) {
			return []models.Like{{PostID: 5, UserID: 1}}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		likes, err := svc.Like(ctx, 5, 1)
		require.NoError(t, err)
		assert.Len(t, likes, 1)
	})
}

func TestPostService_Unlike_NotLikedConflicts(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.deleteLikeFn = func(_ context.Context, _, _ uint) (bool, error) {
		return false, nil
	}
	svc := NewPostService(postRepo, noopUserRepo())

	_, err := svc.Unlike(context.Background(), 5, 1)
	assertAppError(t, err, models.CodeConflict, "Post has not yet been liked")
}

func TestPostService_AddComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.AddComment(ctx, AddCommentInput{PostID: 5, UserID: 1})
		assertAppError(t, err, models.CodeValidation, "Text is required")
	})

	t.Run("stamps commenter snapshot", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		var created *models.Comment
		postRepo.createCommentFn = func(_ context.Context, c *models.Comment) error {
			created = c
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.AddComment(ctx, AddCommentInput{PostID: 5, UserID: 1, Text: "nice"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "John Doe", created.Name)
		assert.Equal(t, uint(5), created.PostID)
	})
}

func TestPostService_DeleteComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("comment on different post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getCommentFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 6, UserID: 1}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(ctx, 5, 10, 1)
		assertAppError(t, err, models.CodeNotFound, "Comment does not exist")
	})

	t.Run("not the author", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getCommentFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 5, UserID: 2}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(ctx, 5, 10, 1)
		assertAppError(t, err, models.CodeForbidden, "User not authorized")
	})

	t.Run("deletes the addressed comment only", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getCommentFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 5, UserID: 1}, nil
		}
		var deletedID uint
		postRepo.deleteCommentFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(ctx, 5, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(10), deletedID)
	})
}
