package repository

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// experience/education collections.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error

	AddExperience(ctx context.Context, userID uint, exp *models.Experience) error
	GetExperienceByID(ctx context.Context, id uint) (*models.Experience, error)
	DeleteExperience(ctx context.Context, userID, id uint) error

	AddEducation(ctx context.Context, userID uint, edu *models.Education) error
	GetEducationByID(ctx context.Context, id uint) (*models.Education, error)
	DeleteEducation(ctx context.Context, userID, id uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID loads a profile by its owner through the cache.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		defer observability.ObserveQuery("select", "profiles", time.Now())

		if err := r.applyProfileDetails(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNoProfile
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	defer observability.ObserveQuery("select", "profiles", time.Now())

	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// applyProfileDetails preloads the owning user and the experience and
// education collections, newest entries first.
func (r *profileRepository) applyProfileDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer observability.ObserveQuery("insert", "profiles", time.Now())

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	defer observability.ObserveQuery("update", "profiles", time.Now())

	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteByUserID removes the owner's profile; deleting a missing profile
// is a no-op.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	defer observability.ObserveQuery("delete", "profiles", time.Now())

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) error {
	defer observability.ObserveQuery("insert", "experiences", time.Now())

	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) GetExperienceByID(ctx context.Context, id uint) (*models.Experience, error) {
	defer observability.ObserveQuery("select", "experiences", time.Now())

	var exp models.Experience
	if err := r.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Experience does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &exp, nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, userID, id uint) error {
	defer observability.ObserveQuery("delete", "experiences", time.Now())

	if err := r.db.WithContext(ctx).Delete(&models.Experience{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) error {
	defer observability.ObserveQuery("insert", "educations", time.Now())

	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) GetEducationByID(ctx context.Context, id uint) (*models.Education, error) {
	defer observability.ObserveQuery("select", "educations", time.Now())

	var edu models.Education
	if err := r.db.WithContext(ctx).First(&edu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Education does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &edu, nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, userID, id uint) error {
	defer observability.ObserveQuery("delete", "educations", time.Now())

	if err := r.db.WithContext(ctx).Delete(&models.Education{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}
