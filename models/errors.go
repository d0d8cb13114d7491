package models

import "errors"

// ErrInvalid is wrapped by every validation failure so callers can translate
// the whole family with a single errors.Is check.
var ErrInvalid = errors.New("validation failed")
