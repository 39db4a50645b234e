package app

import "errors"

// Validation errors. Operations returning one of these leave state untouched.
var (
	ErrEmptyInput        = errors.New("task text is empty")
	ErrDuplicateTask     = errors.New("task already exists")
	ErrDuplicateFavorite = errors.New("task is already a favorite")
	ErrTaskNotFound      = errors.New("task not found")
)
