package errors

import (
	"errors"
	"fmt"
)

// DataIntegrityError reports an invariant violation found on already-fetched
// rows (correct answers exceeding attempts, negative durations). The metric
// layer always fails the computation with this error instead of clamping the
// offending value.
type DataIntegrityError struct {
	Invariant string      `json:"invariant"`
	Message   string      `json:"message"`
	Value     interface{} `json:"value,omitempty"`
}

func (die *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation (%s): %s", die.Invariant, die.Message)
}

// NewDataIntegrityError creates a new data integrity error
func NewDataIntegrityError(invariant, message string, value interface{}) *DataIntegrityError {
	return &DataIntegrityError{
		Invariant: invariant,
		Message:   message,
		Value:     value,
	}
}

// IsDataIntegrity checks if error represents an integrity violation
func IsDataIntegrity(err error) bool {
	var die *DataIntegrityError
	return errors.As(err, &die)
}
