package entity

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Instructors have blanket access
// to every account; students can only act on their own.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

func Roles() []Role {
	return []Role{RoleStudent, RoleInstructor}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(s))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
