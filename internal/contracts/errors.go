package contracts

// InputError reports an invalid caller-supplied parameter. Nothing is
// attempted when one is returned.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// NoDataError reports a distinct "nothing to work with" condition: reference
// day absent or too short, no historical days in range, no qualifying
// candidates, or no downstream outcomes. It is a reported condition, not a
// failure of the store.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string { return e.Reason }

// NewInputError builds an InputError with the given reason.
func NewInputError(reason string) error { return &InputError{Reason: reason} }

// NewNoDataError builds a NoDataError with the given reason.
func NewNoDataError(reason string) error { return &NoDataError{Reason: reason} }
