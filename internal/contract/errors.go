package contract

// ValidationError indicates a rejected input, such as an empty report name
// or a missing API key.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError indicates a lookup against an id that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found: " + e.ID }

// BoundaryError wraps a failure reported by an external system. The message
// carries the external diagnostic verbatim so the user sees exactly what
// the boundary said.
type BoundaryError struct {
	Message string
}

func (e *BoundaryError) Error() string { return e.Message }
