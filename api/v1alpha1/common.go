package v1alpha1

const (
	StatusOK = "ok"

	// DefaultSnapshotPageSize applies when a snapshot list does not set a limit.
	DefaultSnapshotPageSize = 50
	MaxSnapshotPageSize     = 500
)

// NewError builds an error body. An empty request id is left out.
func NewError(message string, requestID string) Error {
	e := Error{Message: message}
	if requestID != "" {
		e.RequestId = &requestID
	}
	return e
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
