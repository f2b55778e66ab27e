package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrForbidden indicates that the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidAmount indicates a non-positive monetary amount.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrOverpayment indicates a payment exceeding the outstanding balance of a billing record.
var ErrOverpayment = errors.New("payment exceeds outstanding balance")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
