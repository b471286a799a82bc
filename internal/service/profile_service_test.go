package service

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn     func(context.Context, uint) (*models.Profile, error)
	getAllFn          func(context.Context) ([]*models.Profile, error)
	createFn          func(context.Context, *models.Profile) error
	updateFn          func(context.Context, *models.Profile) error
	deleteByUserIDFn  func(context.Context, uint) error
	addExperienceFn   func(context.Context, uint, *models.Experience) error
	getExperienceFn   func(context.Context, uint) (*models.Experience, error)
	deleteExperience  func(context.Context, uint, uint) error
	addEducationFn    func(context.Context, uint, *models.Education) error
	getEducationFn    func(context.Context, uint) (*models.Education, error)
	deleteEducationFn func(context.Context, uint, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetAll(ctx context.Context) ([]*models.Profile, error) {
	return s.getAllFn(ctx)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, userID uint, exp *models.Experience) error {
	return s.addExperienceFn(ctx, userID, exp)
}
func (s *profileRepoStub) GetExperienceByID(ctx context.Context, id uint) (*models.Experience, error) {
	return s.getExperienceFn(ctx, id)
}
func (s *profileRepoStub) DeleteExperience(ctx context.Context, userID, id uint) error {
	return s.deleteExperience(ctx, userID, id)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, userID uint, edu *models.Education) error {
	return s.addEducationFn(ctx, userID, edu)
}
func (s *profileRepoStub) GetEducationByID(ctx context.Context, id uint) (*models.Education, error) {
	return s.getEducationFn(ctx, id)
}
func (s *profileRepoStub) DeleteEducation(ctx context.Context, userID, id uint) error {
	return s.deleteEducationFn(ctx, userID, id)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 1, UserID: userID, Status: "Developer", Skills: []string{"Go"}}, nil
		},
		getAllFn:         func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Profile) error { return nil },
		deleteByUserIDFn: func(_ context.Context, _ uint) error { return nil },
		addExperienceFn:  func(_ context.Context, _ uint, _ *models.Experience) error { return nil },
		getExperienceFn: func(_ context.Context, id uint) (*models.Experience, error) {
			return &models.Experience{ID: id, ProfileID: 1}, nil
		},
		deleteExperience: func(_ context.Context, _, _ uint) error { return nil },
		addEducationFn:   func(_ context.Context, _ uint, _ *models.Education) error { return nil },
		getEducationFn: func(_ context.Context, id uint) (*models.Education, error) {
			return &models.Education{ID: id, ProfileID: 1}, nil
		},
		deleteEducationFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestProfileService_Upsert_RequiredFields(t *testing.T) {
	t.Parallel()
	svc := NewProfileService(noopProfileRepo(), noopUserRepo())

	_, err := svc.Upsert(context.Background(), 1, UpsertProfileInput{})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "Status is required", appErr.Fields[0].Msg)
	assert.Equal(t, "Skills is required", appErr.Fields[1].Msg)
}

func TestProfileService_Upsert_CreatesWhenMissing(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	var created *models.Profile
	repo.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		if created != nil {
			return created, nil
		}
		return nil, models.NewNotFoundError("There is no profile for this user")
	}
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		created = p
		return nil
	}

	svc := NewProfileService(repo, noopUserRepo())
	profile, err := svc.Upsert(context.Background(), 3, UpsertProfileInput{
		Status: "Developer",
		Skills: "Go, SQL,Redis",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), profile.UserID)
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, []string{"Go", "SQL", "Redis"}, profile.Skills)
}

func TestProfileService_Upsert_PartialUpdate(t *testing.T) {
	t.Parallel()

	existing := &models.Profile{
		ID:       1,
		UserID:   3,
		Status:   "Developer",
		Company:  "Acme",
		Bio:      "old bio",
		Skills:   []string{"Go"},
		Social:   models.Social{Twitter: "https://twitter.com/old"},
	}
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return existing, nil
	}

	svc := NewProfileService(repo, noopUserRepo())
	profile, err := svc.Upsert(context.Background(), 3, UpsertProfileInput{
		Status:  "Senior Developer",
		Skills:  "Go,Rust",
		Twitter: "https://twitter.com/new",
	})
	require.NoError(t, err)

	// Supplied fields replaced, everything else untouched.
	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, []string{"Go", "Rust"}, profile.Skills)
	assert.Equal(t, "https://twitter.com/new", profile.Social.Twitter)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "old bio", profile.Bio)
}

func TestProfileService_AddExperience_Validation(t *testing.T) {
	t.Parallel()
	svc := NewProfileService(noopProfileRepo(), noopUserRepo())

	_, err := svc.AddExperience(context.Background(), 1, ExperienceInput{})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	require.Len(t, appErr.Fields, 3)
	assert.Equal(t, "Title is required", appErr.Fields[0].Msg)
	assert.Equal(t, "Company is required", appErr.Fields[1].Msg)
	assert.Equal(t, "From date is required", appErr.Fields[2].Msg)
}

func TestProfileService_DeleteExperience_Ownership(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	repo.getExperienceFn = func(_ context.Context, id uint) (*models.Experience, error) {
		return &models.Experience{ID: id, ProfileID: 99}, nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.DeleteExperience(context.Background(), 1, 10)
	assertAppError(t, err, models.CodeForbidden, "User not authorized")
}

func TestProfileService_AddExperience_Success(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	var added *models.Experience
	repo.addExperienceFn = func(_ context.Context, _ uint, exp *models.Experience) error {
		added = exp
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.AddExperience(context.Background(), 1, ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    from,
		Current: true,
	})
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, uint(1), added.ProfileID)
	assert.Equal(t, "Engineer", added.Title)
	assert.True(t, added.Current)
	assert.Nil(t, added.To)
}

func TestProfileService_DeleteEducation_Ownership(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	repo.getEducationFn = func(_ context.Context, id uint) (*models.Education, error) {
		return &models.Education{ID: id, ProfileID: 99}, nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.DeleteEducation(context.Background(), 1, 10)
	assertAppError(t, err, models.CodeForbidden, "User not authorized")
}

func TestProfileService_DeleteAccount(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	var profileDeleted, userDeleted uint
	repo.deleteByUserIDFn = func(_ context.Context, userID uint) error {
		profileDeleted = userID
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, id uint) error {
		userDeleted = id
		return nil
	}

	svc := NewProfileService(repo, userRepo)
	require.NoError(t, svc.DeleteAccount(context.Background(), 7))
	assert.Equal(t, uint(7), profileDeleted)
	assert.Equal(t, uint(7), userDeleted)
}
