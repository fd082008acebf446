package studio

import (
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

var (
	ErrUnknownSection     = errors.New("unknown song structure section")
	ErrInvalidSectionType = errors.New("invalid song structure section type")
	ErrInvalidDirection   = errors.New("direction must be up or down")
)

// Direction moves a section one slot towards the start or end of the song
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// AddSection appends a new empty section of the given type
func AddSection(s models.FormState, sectionType string) (models.FormState, models.SongStructureItem, error) {
	if !models.SectionTypes.Contains(sectionType) {
		return s, models.SongStructureItem{}, fmt.Errorf("%w: %q", ErrInvalidSectionType, sectionType)
	}
	item := models.SongStructureItem{ID: models.NewSectionID(), Type: sectionType}
	out := s.Clone()
	out.SongStructure = append(out.SongStructure, item)
	return out, item, nil
}

// RemoveSection drops the section with the given id
func RemoveSection(s models.FormState, id string) (models.FormState, error) {
	idx := sectionIndex(s.SongStructure, id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	out := s.Clone()
	out.SongStructure = append(out.SongStructure[:idx], out.SongStructure[idx+1:]...)
	return out, nil
}

// UpdateSection replaces the instructions of the section with the given id
func UpdateSection(s models.FormState, id, instructions string) (models.FormState, error) {
	idx := sectionIndex(s.SongStructure, id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	out := s.Clone()
	out.SongStructure[idx].Instructions = instructions
	return out, nil
}

// MoveSection swaps the section with its neighbour. Moving past either end is a no-op.
func MoveSection(s models.FormState, id string, dir Direction) (models.FormState, error) {
	if dir != DirectionUp && dir != DirectionDown {
		return s, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	idx := sectionIndex(s.SongStructure, id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	}
	out := s.Clone()
	if target < 0 || target >= len(out.SongStructure) {
		return out, nil
	}
	out.SongStructure[idx], out.SongStructure[target] = out.SongStructure[target], out.SongStructure[idx]
	return out, nil
}

func sectionIndex(items []models.SongStructureItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
