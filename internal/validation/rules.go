// Package validation holds the field-level rule sets for every entity. Each
// rule set is a pure function returning the ordered list of violation messages;
// an empty list means the input is valid. Message order follows the fixed
// field-check sequence so callers can rely on deterministic output.
package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vitalize/club-api/internal/models"
)

var validate = validator.New()

// SessionDateLayout is the calendar date format accepted from clients.
const SessionDateLayout = "2006-01-02"

// ProgramInput carries the raw program form fields. Emptiness is checked on
// the raw value without trimming.
type ProgramInput struct {
	Name        string
	Description string
	CoachName   string
	Contact     string
	Duration    models.Number
	SkillLevel  string
}

// Program validates a program's fields.
func Program(in ProgramInput) []string {
	var errs []string
	if in.Name == "" {
		errs = append(errs, "Program name is required")
	}
	if in.Description == "" {
		errs = append(errs, "Description is required")
	}
	if in.CoachName == "" {
		errs = append(errs, "Coach name is required")
	}
	if in.Contact == "" {
		errs = append(errs, "Contact information is required")
	}
	if d, ok := in.Duration.Float(); !ok || d <= 0 {
		errs = append(errs, "Duration must be a positive number")
	}
	if !models.SkillLevel(in.SkillLevel).Valid() {
		errs = append(errs, "Invalid skill level")
	}
	return errs
}

// EnrolmentInput carries the raw enrolment form fields. Program existence and
// the skill-level match are cross-entity rules checked by the service.
type EnrolmentInput struct {
	GymnastName     string
	Age             models.Number
	ExperienceLevel string
}

// Enrolment validates an enrolment's own fields.
func Enrolment(in EnrolmentInput) []string {
	var errs []string
	if in.GymnastName == "" {
		errs = append(errs, "Gymnast name is required")
	}
	if a, ok := in.Age.Float(); !ok || a < 5 || a > 100 {
		errs = append(errs, "Age must be a number between 5 and 100")
	}
	if !models.SkillLevel(in.ExperienceLevel).Valid() {
		errs = append(errs, "Invalid experience level")
	}
	return errs
}

// AttendanceInput carries the raw attendance form fields.
type AttendanceInput struct {
	SessionDate string
}

// Attendance validates an attendance record's own fields.
func Attendance(in AttendanceInput) []string {
	return sessionDateErrors(in.SessionDate)
}

// ProgressInput carries the raw progress form fields.
type ProgressInput struct {
	SessionDate string
	Notes       string
	Score       models.Number
}

// Progress validates a progress record's own fields.
func Progress(in ProgressInput) []string {
	errs := sessionDateErrors(in.SessionDate)
	if in.Notes == "" {
		errs = append(errs, "Progress notes are required")
	}
	if s, ok := in.Score.Float(); !ok || s < 0 || s > 100 {
		errs = append(errs, "Score must be a number between 0 and 100")
	}
	return errs
}

// ParseSessionDate parses a client-supplied calendar date. It assumes the
// value already passed the rule set for its entity.
func ParseSessionDate(raw string) (time.Time, error) {
	return time.Parse(SessionDateLayout, raw)
}

func sessionDateErrors(raw string) []string {
	if raw == "" {
		return []string{"Session date is required"}
	}
	if _, err := time.Parse(SessionDateLayout, raw); err != nil {
		return []string{"Session date must be a valid date (YYYY-MM-DD)"}
	}
	return nil
}

// RegisterInput carries the registration form fields. Auth fields are trimmed
// before checking, unlike program and enrolment fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Register validates a registration request. The username/email uniqueness
// rule needs store access and is appended by the auth service.
func Register(in RegisterInput) []string {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)

	var errs []string
	if username == "" {
		errs = append(errs, "Username is required")
	}
	if email == "" {
		errs = append(errs, "Email is required")
	}
	if in.Password == "" {
		errs = append(errs, "Password is required")
	}
	if fullName == "" {
		errs = append(errs, "Full name is required")
	}
	if validate.Var(email, "required,email") != nil {
		errs = append(errs, "Invalid email format")
	}
	if len(in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	return errs
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Username string
	Password string
}

// Login validates a login request.
func Login(in LoginInput) []string {
	var errs []string
	if strings.TrimSpace(in.Username) == "" {
		errs = append(errs, "Username is required")
	}
	if in.Password == "" {
		errs = append(errs, "Password is required")
	}
	return errs
}
