// Package validation holds the field predicates the user service consults
// before touching the repository. Each predicate reports the first reason a
// value is unacceptable; none of them perform I/O.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/pkg/apperror"
)

var validate = validator.New()

func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.InvalidInput("name must not be empty")
	}
	return nil
}

func Email(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return apperror.InvalidInput("invalid email")
	}
	return nil
}

const MinPasswordLength = 6

func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperror.InvalidInput(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

func Role(raw string) (entity.Role, error) {
	role, err := entity.ParseRole(raw)
	if err != nil {
		return "", apperror.InvalidInput(fmt.Sprintf("role must be one of %v", entity.Roles()))
	}
	return role, nil
}

// UserID checks well-formedness only; existence is the repository's concern.
func UserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.InvalidInput("invalid user id")
	}
	return id, nil
}
