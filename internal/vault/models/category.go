package models

import "time"

// Category groups records by platform kind (bank, email, website, ...).
// Code and Name are unique.
type Category struct {
	ID          string
	Code        string
	Name        string
	Description string
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
