// Package errors defines the domain error type shared by all services.
// Every operation surfaces failures as a DomainError whose Code is the
// machine-readable reason string returned to callers.
package errors

// DomainError is a structured business error.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is lets errors.Is match two domain errors by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
