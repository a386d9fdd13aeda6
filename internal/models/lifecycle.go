package models

import "time"

// Lifecycle carries the soft-delete state shared by persisted documents.
type Lifecycle struct {
	UpdatedAt time.Time  `json:"updatedAt"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// MarkDeleted flags the record as deleted at now.
func (l *Lifecycle) MarkDeleted(now time.Time) {
	l.Deleted = true
	l.DeletedAt = &now
	l.UpdatedAt = now
}

// Restore clears the deleted flag.
func (l *Lifecycle) Restore(now time.Time) {
	l.Deleted = false
	l.DeletedAt = nil
	l.UpdatedAt = now
}

// Touch records a modification.
func (l *Lifecycle) Touch(now time.Time) {
	l.UpdatedAt = now
}

// DeletedBefore reports whether the record was soft-deleted before t.
func (l *Lifecycle) DeletedBefore(t time.Time) bool {
	return l.Deleted && l.DeletedAt != nil && l.DeletedAt.Before(t)
}
