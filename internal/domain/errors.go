package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repositories when no record exists for the
// requested aggregate id.
var ErrNotFound = errors.New("payment request not found")

// DomainError is a business-rule violation. It can carry several messages at
// once, so that a caller submitting multiple invalid fields learns about all
// of them in a single round trip.
type DomainError struct {
	Messages []string
}

func NewDomainError(messages ...string) *DomainError {
	return &DomainError{Messages: messages}
}

func (e *DomainError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// IsDomainError reports whether err is (or wraps) a DomainError, returning it.
func IsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// errorCollector accumulates domain errors across independent field
// validations instead of short-circuiting on the first failure.
type errorCollector struct {
	messages []string
}

func (c *errorCollector) collect(err error) {
	if err == nil {
		return
	}
	if de, ok := IsDomainError(err); ok {
		c.messages = append(c.messages, de.Messages...)
		return
	}
	c.messages = append(c.messages, err.Error())
}

func (c *errorCollector) err() error {
	if len(c.messages) == 0 {
		return nil
	}
	return NewDomainError(c.messages...)
}
