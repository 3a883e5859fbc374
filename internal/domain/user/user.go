package user

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Revision is one entry of the store's history view for a user.
type Revision struct {
	Revision      int64
	Operation     string
	TransactionID string
	RecordedAt    time.Time
	User          User
}

// Changes carries the fields an update may touch. Nil means unchanged.
type Changes struct {
	Name  *string
	Email *string
}

func (c Changes) Empty() bool {
	return c.Name == nil && c.Email == nil
}

func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

func NewUser(id, name, email string, createdAt time.Time) (User, error) {
	if err := ValidateID(id); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return User{}, ErrInvalidName
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}

	return User{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}, nil
}

// Apply returns a copy of u with the changes applied and validated.
func (u User) Apply(c Changes) (User, error) {
	out := u
	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return User{}, ErrInvalidName
		}
		out.Name = strings.TrimSpace(*c.Name)
	}
	if c.Email != nil {
		if _, err := mail.ParseAddress(*c.Email); err != nil {
			return User{}, ErrInvalidEmail
		}
		out.Email = *c.Email
	}
	return out, nil
}
