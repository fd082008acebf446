package studio

import (
	"testing"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStructure(t *testing.T, types ...string) models.FormState {
	t.Helper()
	s := models.EmptyFormState()
	for _, typ := range types {
		var err error
		s, _, err = AddSection(s, typ)
		require.NoError(t, err)
	}
	return s
}

func sectionTypes(s models.FormState) []string {
	var out []string
	for _, item := range s.SongStructure {
		out = append(out, item.Type)
	}
	return out
}

func TestAddSection(t *testing.T) {
	s := buildStructure(t, "Intro", "Verse", "Chorus")
	assert.Equal(t, []string{"Intro", "Verse", "Chorus"}, sectionTypes(s))
	assert.NotEqual(t, s.SongStructure[0].ID, s.SongStructure[1].ID)

	_, _, err := AddSection(s, "Middle Eight")
	assert.ErrorIs(t, err, ErrInvalidSectionType)
}

func TestRemoveSection(t *testing.T) {
	s := buildStructure(t, "Intro", "Verse", "Chorus")
	out, err := RemoveSection(s, s.SongStructure[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro", "Chorus"}, sectionTypes(out))
	assert.Len(t, s.SongStructure, 3)

	_, err = RemoveSection(s, "missing")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestUpdateSection(t *testing.T) {
	s := buildStructure(t, "Verse")
	out, err := UpdateSection(s, s.SongStructure[0].ID, "half-time drums")
	require.NoError(t, err)
	assert.Equal(t, "half-time drums", out.SongStructure[0].Instructions)
	assert.Empty(t, s.SongStructure[0].Instructions)
}

func TestMoveSectionKeepsIDs(t *testing.T) {
	s := buildStructure(t, "Intro", "Verse", "Chorus")
	verseID := s.SongStructure[1].ID

	up, err := MoveSection(s, verseID, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"Verse", "Intro", "Chorus"}, sectionTypes(up))
	assert.Equal(t, verseID, up.SongStructure[0].ID)

	stuck, err := MoveSection(up, verseID, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, sectionTypes(up), sectionTypes(stuck))

	down, err := MoveSection(s, s.SongStructure[2].ID, DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, sectionTypes(s), sectionTypes(down))

	_, err = MoveSection(s, verseID, Direction("left"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
