// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "HTML", "CSS",
	"React", "Node.js", "PostgreSQL", "Redis", "Docker", "Kubernetes",
	"GraphQL", "gRPC", "AWS", "Terraform",
}

// Seeder populates the database with realistic-looking development data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to the given database handle.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll wipes all seeded tables. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing database...")
	tables := []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	return nil
}

// Run seeds users with profiles, then posts with likes and comments.
func (s *Seeder) Run(opts Options) error {
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	if err := s.seedProfiles(users); err != nil {
		return err
	}
	return s.seedPosts(users, opts.NumPosts)
}

// seedUsers creates users with a shared password ("password123") so any
// seeded account can be logged into during development.
func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("%d.%s", i, gofakeit.Email())
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    strings.ToLower(email),
			Password: string(hashed),
			Avatar:   gravatar.URL(email),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// seedProfiles gives roughly 80%% of users a developer profile.
func (s *Seeder) seedProfiles(users []*models.User) error {
	created := 0
	for _, user := range users {
		if rand.Intn(10) < 2 {
			continue
		}

		profile := &models.Profile{
			UserID:         user.ID,
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:         statuses[rand.Intn(len(statuses))],
			Bio:            gofakeit.Sentence(12),
			GithubUsername: strings.ToLower(gofakeit.Username()),
			Skills:         randomSkills(),
			Social: models.Social{
				Twitter:  "https://twitter.com/" + gofakeit.Username(),
				Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
			},
		}

		for i := 0; i < 1+rand.Intn(3); i++ {
			from := gofakeit.DateRange(
				time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
			exp := models.Experience{
				Title:       gofakeit.JobTitle(),
				Company:     gofakeit.Company(),
				Location:    gofakeit.City(),
				From:        from,
				Current:     i == 0,
				Description: gofakeit.Sentence(10),
			}
			if !exp.Current {
				to := from.AddDate(rand.Intn(3)+1, 0, 0)
				exp.To = &to
			}
			profile.Experience = append(profile.Experience, exp)
		}

		if rand.Intn(2) == 0 {
			from := gofakeit.DateRange(
				time.Now().AddDate(-15, 0, 0), time.Now().AddDate(-5, 0, 0))
			to := from.AddDate(4, 0, 0)
			profile.Education = append(profile.Education, models.Education{
				School:       gofakeit.Company() + " University",
				Degree:       "BSc",
				FieldOfStudy: "Computer Science",
				From:         from,
				To:           &to,
			})
		}

		if err := s.db.Create(profile).Error; err != nil {
			return fmt.Errorf("creating profile for user %d: %w", user.ID, err)
		}
		created++
	}
	log.Printf("Seeded %d profiles", created)
	return nil
}

// seedPosts creates posts with like and comment activity from random users.
func (s *Seeder) seedPosts(users []*models.User, n int) error {
	if len(users) == 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			UserID: author.ID,
			Text:   gofakeit.Paragraph(1, 2, 8, " "),
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}

		for _, liker := range pickUsers(users, rand.Intn(6)) {
			like := &models.Like{PostID: post.ID, UserID: liker.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}

		for _, commenter := range pickUsers(users, rand.Intn(4)) {
			comment := &models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(8),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}
	log.Printf("Seeded %d posts", n)
	return nil
}

// pickUsers selects up to n distinct users at random.
func pickUsers(users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := rand.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}

func randomSkills() []string {
	n := 3 + rand.Intn(4)
	perm := rand.Perm(len(skillPool))
	skills := make([]string, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}
