package reference

import "fmt"

// ErrConfiguration is returned when a reference table is missing a key or carries an inconsistent
// coefficient. It marks a defect in the table, never bad user input, and aborts the estimate.
type ErrConfiguration struct {
	error
}

func NewErrConfiguration(format string, args ...any) *ErrConfiguration {
	return &ErrConfiguration{fmt.Errorf(format, args...)}
}

func NewErrMissingKey(version, kind string, key any) *ErrConfiguration {
	return NewErrConfiguration("reference table %s has no %s %q", version, kind, key)
}

func NewErrUnknownValue(kind, value string) *ErrConfiguration {
	return NewErrConfiguration("unknown %s %q", kind, value)
}

func NewErrUnknownVersion(version string) *ErrConfiguration {
	return NewErrConfiguration("unknown reference table version %q", version)
}
