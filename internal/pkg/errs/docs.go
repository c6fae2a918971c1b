// Package errs provides the error taxonomy shared by every layer of orderhub.
//
// Each error type pairs a sentinel with a struct carrying details:
//   - ObjectNotFoundError (ErrObjectNotFound): an entity is absent
//   - ValueIsInvalidError (ErrValueIsInvalid): a value breaks a domain rule
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory value is missing
//   - ForbiddenError (ErrForbidden): the actor lacks the required relationship or role
//   - InvalidTransitionError (ErrInvalidTransition): a status change is not an allowed edge
//   - ConflictError (ErrConflict): a concurrent writer won the race
//
// Unwrap returns the sentinel, so callers classify with errors.Is and read
// details with errors.As. The HTTP adapter maps sentinels to stable codes.
package errs
