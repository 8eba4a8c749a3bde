package idgen

import "github.com/google/uuid"

// NewFunc produces fiber identifiers. It is a variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as a string.
func New() string { return NewFunc() }
