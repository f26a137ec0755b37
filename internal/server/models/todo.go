// Package models defines server-side data models persisted in the database.
package models

import "time"

// Todo is a single task owned by exactly one user. Every read and write of a
// Todo is scoped by UserID; rows belonging to other users are invisible.
type Todo struct {
	ID          string
	UserID      string
	Content     string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
