package router

import "errors"

// Registration errors. All of them are fatal to startup: the registration
// step should abort initialization rather than serve a partial table.
var (
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrUnknownMethod  = errors.New("unknown http method")
	ErrNilHandler     = errors.New("nil handler")
	ErrTableFrozen    = errors.New("route table is frozen")
)
