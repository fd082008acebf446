package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// ErrNotFound is returned when a client has no stored session
var ErrNotFound = errors.New("session not found")

// Store keeps the last snapshot of every client, keyed by client id
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save upserts the client's snapshot
func (s *Store) Save(ctx context.Context, clientID string, snap models.Snapshot) error {
	if snap.LockedFields == nil {
		snap.LockedFields = models.LockMap{}
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", clientID, err)
	}

	row := models.StoredSession{ClientID: clientID, Payload: string(payload)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("session: save %s: %w", clientID, err)
	}
	return nil
}

// Load returns the client's snapshot. A missing row is ErrNotFound; a row that
// no longer decodes is reported as ErrInvalidToken.
func (s *Store) Load(ctx context.Context, clientID string) (models.Snapshot, error) {
	var row models.StoredSession
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("session: load %s: %w", clientID, err)
	}
	return Unmarshal([]byte(row.Payload))
}

// Delete removes the client's stored session, if any
func (s *Store) Delete(ctx context.Context, clientID string) error {
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&models.StoredSession{}).Error; err != nil {
		return fmt.Errorf("session: delete %s: %w", clientID, err)
	}
	return nil
}
