package service

import "errors"

// Service layer errors surfaced to the HTTP edge.
var (
	ErrUnknownHall    = errors.New("unknown hall")
	ErrUnknownSession = errors.New("unknown session")
	ErrCourseNotFound = errors.New("course not found")
)
