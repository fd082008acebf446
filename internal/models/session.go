package models

import "time"

// Snapshot is the persisted/shared pair of form inputs and lock flags
type Snapshot struct {
	Inputs       FormState `json:"inputs"`
	LockedFields LockMap   `json:"lockedFields"`
}

// StoredSession is the per-client row holding the last saved snapshot
type StoredSession struct {
	ClientID  string    `gorm:"primaryKey;size:128" json:"client_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for StoredSession
func (StoredSession) TableName() string {
	return "studio_sessions"
}
