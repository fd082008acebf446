package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// DeconstructFields are the fields a vibe description can be broken into
var DeconstructFields = []models.Field{
	models.FieldGenre,
	models.FieldMood,
	models.FieldInstruments,
	models.FieldTechniques,
	models.FieldSoundDesign,
	models.FieldVocals,
	models.FieldBPM,
	models.FieldInfluences,
	models.FieldTheme,
}

// InspireFields returns the fields a random fill should generate: everything not
// locked, never lyrics
func InspireFields(locked models.FormPatch) []models.Field {
	var fields []models.Field
	for _, f := range models.AllFields {
		if f == models.FieldLyrics || locked.Has(f) {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// ValidateInspire turns a model response into a patch of the requested fields.
// Unrequested keys are ignored, values outside the allowed lists are dropped,
// lyrics are forced empty and song structure ids are regenerated.
func ValidateInspire(raw map[string]json.RawMessage, requested []models.Field) models.FormPatch {
	patch := decodeFields(raw, requested)
	sanitize(&patch)

	if patch.Lyrics != nil {
		patch.Lyrics = new(string)
	}
	return patch
}

// ValidateDeconstruction turns a vibe analysis response into a patch. Empty
// values mean the model could not tell and are dropped.
func ValidateDeconstruction(raw map[string]json.RawMessage) models.FormPatch {
	patch := decodeFields(raw, DeconstructFields)
	sanitize(&patch)
	dropEmpty(&patch)
	return patch
}

func decodeFields(raw map[string]json.RawMessage, fields []models.Field) models.FormPatch {
	var patch models.FormPatch
	for _, f := range fields {
		value, ok := raw[string(f)]
		if !ok || isJSONNull(value) {
			continue
		}
		if f == models.FieldBPM {
			value = bpmAsString(value)
		}
		if err := patch.SetRaw(f, value); err != nil {
			logger.Warn("Dropping malformed model value", logger.Fields{
				"field": string(f),
				"error": err.Error(),
			})
		}
	}
	return patch
}

func sanitize(patch *models.FormPatch) {
	for _, f := range []models.Field{models.FieldGenre, models.FieldMood, models.FieldVocals, models.FieldChords} {
		value := scalar(patch, f)
		if value == nil {
			continue
		}
		vocab, _ := models.ScalarVocabulary(f)
		if !vocab.Contains(*value) {
			patch.Clear(f)
		}
	}

	// An empty vibe preset is a valid "none" answer
	if patch.VibePreset != nil && *patch.VibePreset != "" && !models.VibePresets.Contains(*patch.VibePreset) {
		patch.Clear(models.FieldVibePreset)
	}

	for _, f := range []models.Field{models.FieldInstruments, models.FieldTechniques, models.FieldSoundDesign} {
		list := listOf(patch, f)
		if list == nil {
			continue
		}
		vocab, _ := models.ListVocabulary(f)
		*list = vocab.Filter(*list)
	}

	if patch.SongStructure != nil {
		sections := make([]models.SongStructureItem, 0, len(*patch.SongStructure))
		for _, item := range *patch.SongStructure {
			if !models.SectionTypes.Contains(item.Type) {
				continue
			}
			item.ID = models.NewSectionID()
			sections = append(sections, item)
		}
		*patch.SongStructure = sections
	}
}

func dropEmpty(patch *models.FormPatch) {
	for _, f := range patch.Fields() {
		if v := scalar(patch, f); v != nil && strings.TrimSpace(*v) == "" {
			patch.Clear(f)
		}
		if list := listOf(patch, f); list != nil && len(*list) == 0 {
			patch.Clear(f)
		}
	}
}

func scalar(patch *models.FormPatch, f models.Field) *string {
	switch f {
	case models.FieldGenre:
		return patch.Genre
	case models.FieldMood:
		return patch.Mood
	case models.FieldVocals:
		return patch.Vocals
	case models.FieldChords:
		return patch.Chords
	case models.FieldTheme:
		return patch.Theme
	case models.FieldBPM:
		return patch.BPM
	case models.FieldInfluences:
		return patch.Influences
	case models.FieldVibePreset:
		return patch.VibePreset
	case models.FieldLyrics:
		return patch.Lyrics
	}
	return nil
}

func listOf(patch *models.FormPatch, f models.Field) *[]string {
	switch f {
	case models.FieldInstruments:
		return patch.Instruments
	case models.FieldTechniques:
		return patch.Techniques
	case models.FieldSoundDesign:
		return patch.SoundDesign
	}
	return nil
}

// stringList keeps the string members of a JSON array, skipping anything else
func stringList(raw json.RawMessage) ([]string, bool) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// bpmAsString lets a numeric tempo through as its string form
func bpmAsString(raw json.RawMessage) json.RawMessage {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return raw
	}
	quoted, err := json.Marshal(n.String())
	if err != nil {
		return raw
	}
	return quoted
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
