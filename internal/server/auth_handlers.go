package server

import (
	"fmt"
	"strconv"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "devconnect-api"
	tokenAudience = "devconnect-client"
	tokenTTL      = time.Hour * 24 * 7
)

// Register handles POST /api/users. On success the response carries only the
// signed token; the client fetches the user via GET /api/auth.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	// Collect all field failures so the client can surface each one.
	var fields []models.FieldError
	if err := validation.ValidateName(req.Name); err != nil {
		fields = append(fields, models.FieldError{Msg: err.Error()})
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields = append(fields, models.FieldError{Msg: err.Error()})
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fields = append(fields, models.FieldError{Msg: err.Error()})
	}
	if len(fields) > 0 {
		return respondErr(c, models.NewValidationErrors(fields))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if existing != nil {
		return respondErr(c, models.NewValidationError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Avatar:   gravatar.URL(req.Email),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondErr(c, createErr)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login handles POST /api/auth. Credential failures deliberately share one
// message so the endpoint does not reveal which accounts exist.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	var fields []models.FieldError
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields = append(fields, models.FieldError{Msg: err.Error()})
	}
	if req.Password == "" {
		fields = append(fields, models.FieldError{Msg: "Password is required"})
	}
	if len(fields) > 0 {
		return respondErr(c, models.NewValidationErrors(fields))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if user == nil {
		return respondErr(c, models.NewValidationError("Invalid Credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return respondErr(c, models.NewValidationError("Invalid Credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetAuthUser handles GET /api/auth, returning the authenticated user.
// The password hash is excluded by the model's JSON tags.
func (s *Server) GetAuthUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), userID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

// generateToken creates a signed JWT for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": tokenIssuer,                            // Issuer
		"aud": tokenAudience,                          // Audience
		"exp": now.Add(tokenTTL).Unix(),               // Expiration (7 days)
		"iat": now.Unix(),                             // Issued at
		"nbf": now.Unix(),                             // Not before
		"jti": s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
