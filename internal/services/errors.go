package services

import (
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
)

var (
	ErrTeamNotFound     = &apierrors.NotFoundError{Entity: "team", Message: "Team not found"}
	ErrTeamCodeNotFound = &apierrors.NotFoundError{Entity: "team", Message: "Team not found. Check your team code."}
	ErrTaskNotFound     = &apierrors.NotFoundError{Entity: "task", Message: "Task not found"}

	ErrNotTeamLeader = &apierrors.AuthorizationError{Message: "Only the team leader can create tasks"}
	ErrNotTaskOwner  = &apierrors.AuthorizationError{Message: "Only the task owner can update its status"}

	ErrOwnerNotMember  = &apierrors.ValidationError{Field: "ownerId", Message: "Owner must be a member of this team"}
	ErrInvalidStatus   = &apierrors.ValidationError{Field: "status", Message: "Invalid status value"}
	ErrInvalidDeadline = &apierrors.ValidationError{Field: "deadline", Message: "Deadline must be a valid date"}

	ErrTeamCodeConflict   = &apierrors.ConflictError{Message: "Could not reserve a unique team code. Please try again."}
	ErrMemberNameConflict = &apierrors.ConflictError{Message: "A member with this name just joined the team. Please join again to sign in."}
)
