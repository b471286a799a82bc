package server

import (
	"errors"
	"time"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respondErr maps an application error to its HTTP status and writes it.
func respondErr(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// userID returns the authenticated user's ID stored by AuthRequired.
func userID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// parsePostID extracts the post id route parameter. A malformed id is
// indistinguishable from a missing post, so it yields the same 404 as a
// lookup miss. On failure the response is already written and
// errResponseWritten is returned.
func (s *Server) parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post not found"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseID extracts a positive uint route parameter, writing a 404 with the
// given message on failure.
func (s *Server) parseID(c *fiber.Ctx, param, notFoundMsg string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(notFoundMsg))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// dateLayouts are the accepted wire formats for experience/education dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate parses a date string in RFC3339 or YYYY-MM-DD form. Empty input
// returns the zero time with no error.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseOptionalDate is parseDate for nullable "to" dates.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
