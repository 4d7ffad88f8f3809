// Package authz decides whether an authenticated caller may perform an
// operation on a target account. It is a pure predicate: establishing the
// caller's identity (or failing to, which is a 401 concern) happens in the
// auth middleware before this package is consulted.
package authz

import (
	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
)

type Operation int

const (
	OpCreate Operation = iota
	OpRead
	OpReadAll
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpReadAll:
		return "read_all"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

type Caller struct {
	ID   uuid.UUID
	Role entity.Role
}

// Allowed evaluates the access rules in precedence order:
//  1. anyone may create an account
//  2. instructors may do anything to anyone
//  3. a caller may read, update or delete their own account
//  4. everything else is denied
//
// Listing all accounts has no target, so only rule 2 can reach it.
func Allowed(op Operation, caller Caller, targetID uuid.UUID) bool {
	if op == OpCreate {
		return true
	}

	if caller.Role == entity.RoleInstructor {
		return true
	}

	switch op {
	case OpRead, OpUpdate, OpDelete:
		return targetID != uuid.Nil && caller.ID == targetID
	}

	return false
}
