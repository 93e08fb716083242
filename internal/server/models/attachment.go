package models

// Link is a URL attached to a note. NoteID is nil once the parent note has
// been deleted.
type Link struct {
	ID     int64
	URL    string
	NoteID *int64
}

// Media is a stored file reference attached to a note. NoteID is nil once
// the parent note has been deleted.
type Media struct {
	ID       int64
	FilePath string
	NoteID   *int64
}
