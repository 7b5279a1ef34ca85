package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation is blocked by the current state of
// another resource (e.g. deleting a tax category that accounts still reference).
var ErrConflict = errors.New("operation conflicts with existing resources")

// ErrForbidden indicates that the caller is not allowed to act on the
// resource (e.g. deleting another user's comment).
var ErrForbidden = errors.New("operation not permitted for caller")

// ErrNoTrialBalance indicates that a sync was attempted for a client that has
// no trial balance to merge into.
var ErrNoTrialBalance = errors.New("no trial balance exists for client")

// ErrReauthorizationRequired indicates that the stored QuickBooks refresh
// token is no longer valid and the user must reconnect the integration.
// Distinct from generic sync failures so callers can prompt for reconnection
// instead of suggesting a retry.
var ErrReauthorizationRequired = errors.New("quickbooks reauthorization required")

// ErrSyncInProgress indicates that a sync for the same client is already running.
var ErrSyncInProgress = errors.New("sync already in progress for client")
