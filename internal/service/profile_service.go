package service

import (
	"context"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

// ProfileService implements profile upsert, experience/education
// management, and cascading account deletion.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// UpsertProfileInput carries the upsert fields. Empty strings mean
// "not supplied"; supplied fields replace, unset fields are left alone.
type UpsertProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// Upsert creates the owner's profile if absent, otherwise updates only
// the supplied fields. Status and skills are required either way.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in UpsertProfileInput) (*models.Profile, error) {
	var fields []models.FieldError
	if in.Status == "" {
		fields = append(fields, models.FieldError{Msg: "Status is required"})
	}
	if in.Skills == "" {
		fields = append(fields, models.FieldError{Msg: "Skills is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationErrors(fields)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		s.applyFields(profile, in)
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	case isNotFound(err):
		profile = &models.Profile{UserID: userID, Skills: []string{}}
		s.applyFields(profile, in)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) applyFields(profile *models.Profile, in UpsertProfileInput) {
	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Website != "" {
		profile.Website = in.Website
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Status != "" {
		profile.Status = in.Status
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		profile.GithubUsername = in.GithubUsername
	}
	if in.Skills != "" {
		profile.Skills = validation.SplitSkills(in.Skills)
	}
	if in.Youtube != "" {
		profile.Social.Youtube = in.Youtube
	}
	if in.Twitter != "" {
		profile.Social.Twitter = in.Twitter
	}
	if in.Facebook != "" {
		profile.Social.Facebook = in.Facebook
	}
	if in.Linkedin != "" {
		profile.Social.Linkedin = in.Linkedin
	}
	if in.Instagram != "" {
		profile.Social.Instagram = in.Instagram
	}
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetAll returns every profile.
func (s *ProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.GetAll(ctx)
}

// ExperienceInput carries the fields for a work history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends a work history entry to the owner's profile and
// returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	var fields []models.FieldError
	if in.Title == "" {
		fields = append(fields, models.FieldError{Msg: "Title is required"})
	}
	if in.Company == "" {
		fields = append(fields, models.FieldError{Msg: "Company is required"})
	}
	if in.From.IsZero() {
		fields = append(fields, models.FieldError{Msg: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationErrors(fields)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, userID, exp); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteExperience removes an entry by id after verifying it belongs to
// the requester's profile.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp, err := s.profileRepo.GetExperienceByID(ctx, expID)
	if err != nil {
		return nil, err
	}
	if exp.ProfileID != profile.ID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.profileRepo.DeleteExperience(ctx, userID, expID); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// EducationInput carries the fields for an education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddEducation prepends an education entry to the owner's profile and
// returns the updated profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	var fields []models.FieldError
	if in.School == "" {
		fields = append(fields, models.FieldError{Msg: "School is required"})
	}
	if in.Degree == "" {
		fields = append(fields, models.FieldError{Msg: "Degree is required"})
	}
	if in.FieldOfStudy == "" {
		fields = append(fields, models.FieldError{Msg: "Field of study is required"})
	}
	if in.From.IsZero() {
		fields = append(fields, models.FieldError{Msg: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationErrors(fields)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, userID, edu); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteEducation removes an entry by id after verifying it belongs to
// the requester's profile.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu, err := s.profileRepo.GetEducationByID(ctx, eduID)
	if err != nil {
		return nil, err
	}
	if edu.ProfileID != profile.ID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.profileRepo.DeleteEducation(ctx, userID, eduID); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the owner's profile (a no-op when absent) and
// then the user record itself.
// TODO: also remove the user's posts and comments; today they survive as
// orphaned records still visible in the feed.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// isNotFound reports whether err is the application NOT_FOUND kind.
func isNotFound(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == models.CodeNotFound
}
