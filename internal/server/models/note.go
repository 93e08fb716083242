package models

import "github.com/dmitrijs2005/notekeeper/internal/optional"

// Field limits shared by the boundary validation and the tests.
const (
	TitleMinLength   = 1
	TitleMaxLength   = 200
	ContentMaxLength = 5000
)

// Note is a titled, optionally-bodied text record owned by one user.
// Content is nil when the note has no body.
type Note struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Content *string `json:"content"`
	UserID  int64   `json:"user_id"`
}

// NoteCreate is the validated input of a create operation.
type NoteCreate struct {
	Title   string
	Content *string
	UserID  int64
}

// NoteUpdate is a partial update: only fields that are Set are written.
// A set Content holding nil clears the body.
type NoteUpdate struct {
	Title   optional.Field[string]
	Content optional.Field[*string]
}

// Empty reports whether the update carries no fields at all.
func (u NoteUpdate) Empty() bool {
	return !u.Title.Set && !u.Content.Set
}
