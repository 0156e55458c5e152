// Package errs defines the typed error taxonomy shared by the resload
// domain packages. All errors are detected eagerly at the boundary of the
// offending call and carry enough context (technology, year, index, value)
// for the caller to correct its input; nothing is retried internally.
package errs

import "fmt"

// DataIntegrityError reports a malformed or inconsistent series store:
// a technology table missing, mismatched year sets or period counts, or a
// negative/non-finite value after normalization.
type DataIntegrityError struct {
	Technology string
	Year       int
	Period     int
	Value      float64
	Reason     string
}

func (e *DataIntegrityError) Error() string {
	msg := fmt.Sprintf("series store integrity violation: %s", e.Reason)
	if e.Technology != "" {
		msg += fmt.Sprintf(" (technology=%s", e.Technology)
		if e.Year != 0 {
			msg += fmt.Sprintf(" year=%d", e.Year)
		}
		if e.Period != 0 {
			msg += fmt.Sprintf(" period=%d value=%g", e.Period, e.Value)
		}
		msg += ")"
	}
	return msg
}

// MissingDataError reports a technology column absent for a requested year
// at computation time.
type MissingDataError struct {
	Technology string
	Year       int
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no %s data for year %d", e.Technology, e.Year)
}

// InvalidParameterError reports a caller-supplied parameter outside its
// documented range: N out of [1, len], an empty year selection, or a
// negative capacity.
type InvalidParameterError struct {
	Parameter string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Reason)
}
