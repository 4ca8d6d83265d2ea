package mapper

// TypeError reports input that is not document-shaped at some recursion
// level, or a schema misconfiguration.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

// ValueError reports a value whose shape contradicts the configured mapping,
// such as a non-sequence where a list mapper is registered.
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string { return e.Message }
