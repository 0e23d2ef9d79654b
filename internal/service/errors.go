package service

import "errors"

// ErrNotFound maps to HTTP 404. Services wrap it with a French detail:
// fmt.Errorf("%w : catégorie", ErrNotFound).
var ErrNotFound = errors.New("introuvable")

// ErrInvalid maps to HTTP 400 for business-level input problems the
// validator tags cannot express (unknown role, missing feed URL, …).
var ErrInvalid = errors.New("requête invalide")

// ConflictError marks business conflicts that map to HTTP 409: structural
// conflicts on the category tree (cycle, delete guards), duplicate names,
// illegal order transitions. Count carries the number of blocking references
// when one exists.
type ConflictError struct {
	Msg   string
	Count int
}

func (e *ConflictError) Error() string { return e.Msg }

func conflict(msg string) *ConflictError { return &ConflictError{Msg: msg} }

func conflictCount(msg string, n int) *ConflictError {
	return &ConflictError{Msg: msg, Count: n}
}
