package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Input validation failures carry per-site messages
// through NewDomainError with the INVALID_INPUT code.
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrRebuildInProgress = NewDomainError("REBUILD_IN_PROGRESS", "A metrics rebuild is already running, retry later")
)
