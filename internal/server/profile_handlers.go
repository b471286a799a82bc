package server

import (
	"errors"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileErr writes a profile-route error. A missing profile is reported as
// a 400, a quirk the web client depends on; other lookups (experience,
// education entries) keep their 404s.
func profileErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrNoProfile) {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondErr(c, err)
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.Context(), userID(c))
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

// profileRequest is the upsert body. Skills arrive as a comma-separated
// string and are stored as a list.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// UpsertProfile handles POST /api/profile, creating the caller's profile or
// updating the supplied fields of an existing one.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.Context(), userID(c), service.UpsertProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.GetAll(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id. A malformed id
// reads as "Profile not Found"; a valid id with no profile gets the usual
// missing-profile message. Both are 400s.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("user_id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not Found"))
	}

	profile, err := s.profileService.GetByUserID(c.Context(), uint(id))
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile, removing the caller's profile
// and user record.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.Context(), userID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User Deleted"})
}

// experienceRequest carries the experience body; dates are RFC3339 or
// YYYY-MM-DD strings.
type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondErr(c, models.NewValidationError("From date is invalid"))
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondErr(c, models.NewValidationError("To date is invalid"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), userID(c), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := s.parseID(c, "exp_id", "Experience does not exist")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteExperience(c.Context(), userID(c), expID)
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	from, err := parseDate(req.From)
	if err != nil {
		return respondErr(c, models.NewValidationError("From date is invalid"))
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondErr(c, models.NewValidationError("To date is invalid"))
	}

	profile, err := s.profileService.AddEducation(c.Context(), userID(c), service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := s.parseID(c, "edu_id", "Education does not exist")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteEducation(c.Context(), userID(c), eduID)
	if err != nil {
		return profileErr(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username, returning the
// user's five oldest public repositories.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return respondErr(c, models.NewNotFoundError("No Github profile found"))
	}

	repos, err := s.githubClient.Repos(c.Context(), username)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(repos)
}
