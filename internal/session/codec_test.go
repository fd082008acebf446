package session

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

func sampleSnapshot() models.Snapshot {
	inputs := models.InitialFormState()
	inputs.SongStructure = []models.SongStructureItem{
		{ID: "a", Type: "Intro", Instructions: "soft piano"},
		{ID: "b", Type: "Chorus", Instructions: "full band"},
	}
	inputs.TempoChange = true
	return models.Snapshot{
		Inputs:       inputs,
		LockedFields: models.LockMap{models.FieldGenre: true, models.FieldInstruments: true},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	token, err := Encode(snap)
	require.NoError(t, err)

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, snap.Inputs, got.Inputs)
	assert.Equal(t, snap.LockedFields, got.LockedFields)
}

func TestRoundTripNormalizesRawState(t *testing.T) {
	raw := models.Snapshot{
		Inputs: models.FormState{
			Genre:       "Jazz",
			Instruments: []string{"Piano", "Piano"},
		},
	}
	require.Nil(t, raw.Inputs.Techniques)
	require.Nil(t, raw.Inputs.SongStructure)

	token, err := Encode(raw)
	require.NoError(t, err)
	got, err := Decode(token)
	require.NoError(t, err)

	assert.Equal(t, models.Normalize(raw.Inputs), got.Inputs)
	assert.Equal(t, []string{"Piano"}, got.Inputs.Instruments)
	assert.NotNil(t, got.Inputs.Techniques)
	assert.NotNil(t, got.Inputs.SoundDesign)
	assert.NotNil(t, got.Inputs.SongStructure)
	assert.Equal(t, models.LockMap{}, got.LockedFields)

	// Normalized states round-trip unchanged
	token, err = Encode(got)
	require.NoError(t, err)
	again, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestDecodeAcceptsBase64Variants(t *testing.T) {
	payload := []byte(`{"inputs":{"genre":"Jazz","theme":"smoky bar ??>"},"lockedFields":{"genre":true}}`)

	variants := map[string]string{
		"std":     base64.StdEncoding.EncodeToString(payload),
		"url":     base64.URLEncoding.EncodeToString(payload),
		"raw std": base64.RawStdEncoding.EncodeToString(payload),
		"raw url": base64.RawURLEncoding.EncodeToString(payload),
	}

	for name, token := range variants {
		t.Run(name, func(t *testing.T) {
			snap, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, "Jazz", snap.Inputs.Genre)
			assert.Equal(t, "smoky bar ??>", snap.Inputs.Theme)
			assert.True(t, snap.LockedFields.IsLocked(models.FieldGenre))
		})
	}
}

func TestDecodeMergesOntoEmptyForm(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte(`{"inputs":{"genre":"Funk"}}`))

	snap, err := Decode(token)
	require.NoError(t, err)

	want := models.EmptyFormState()
	want.Genre = "Funk"
	assert.Equal(t, want, snap.Inputs)
	assert.NotNil(t, snap.LockedFields)
	assert.Empty(t, snap.LockedFields)
}

func TestDecodeNormalizes(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte(`{
		"inputs": {
			"instruments": ["Piano", "Piano", "Drums"],
			"songStructure": [
				{"id": "x", "type": "Verse", "instructions": ""},
				{"id": "x", "type": "Chorus", "instructions": ""},
				{"id": "", "type": "Outro", "instructions": ""}
			]
		},
		"lockedFields": {"lyrics": true, "bogus": true, "mood": false, "bpm": true}
	}`))

	snap, err := Decode(token)
	require.NoError(t, err)

	assert.Equal(t, []string{"Piano", "Drums"}, snap.Inputs.Instruments)

	ids := map[string]bool{}
	for _, item := range snap.Inputs.SongStructure {
		assert.NotEmpty(t, item.ID)
		ids[item.ID] = true
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, "x", snap.Inputs.SongStructure[0].ID)

	assert.Equal(t, models.LockMap{models.FieldBPM: true}, snap.LockedFields)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "not json", token: base64.StdEncoding.EncodeToString([]byte("hello"))},
		{name: "no inputs", token: base64.StdEncoding.EncodeToString([]byte(`{"lockedFields":{}}`))},
		{name: "null inputs", token: base64.StdEncoding.EncodeToString([]byte(`{"inputs":null}`))},
		{name: "wrong types", token: base64.StdEncoding.EncodeToString([]byte(`{"inputs":{"genre":42}}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
