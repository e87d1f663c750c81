package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a journal entry's debits and credits do not match.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrInvalidState indicates an operation was attempted against an entity in the
// wrong lifecycle state, or that stored sequence data is malformed.
var ErrInvalidState = errors.New("invalid state")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")
