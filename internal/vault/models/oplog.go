package models

import "time"

// OperationLog records maintenance actions (backup, restore) for audit.
type OperationLog struct {
	ID         string
	Operation  string
	FileName   string
	Operator   string
	OperatedAt time.Time
}
