package llm

import (
	"sort"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

const (
	SchemaVariations   = "PromptVariations"
	SchemaInstruments  = "InstrumentSuggestions"
	SchemaTechniques   = "TechniqueSuggestions"
	SchemaSoundDesigns = "SoundDesignSuggestions"
	SchemaRhythmicFeel = "RhythmicFeel"
	SchemaInspire      = "InspiredFields"
	SchemaDeconstruct  = "DeconstructedVibe"
)

// All object schemas set additionalProperties=false and require every property;
// OpenAI's strict mode rejects anything else and Gemini ignores both.
func object(properties map[string]any) map[string]any {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	sort.Strings(required)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values []string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func stringArray(description string, items map[string]any) map[string]any {
	if items == nil {
		items = map[string]any{"type": "string"}
	}
	return map[string]any{"type": "array", "description": description, "items": items}
}

// VariationsSchema is the response shape for prompt generation
func VariationsSchema() *OutputSchema {
	return &OutputSchema{
		Name:        SchemaVariations,
		Description: "Three distinct Suno prompt variations",
		Schema: object(map[string]any{
			"variations": stringArray("Exactly three prompt variations", nil),
		}),
	}
}

// SuggestionSchema is the response shape for one suggestion list, keyed by the given property
func SuggestionSchema(name, key string, vocab models.Vocabulary) *OutputSchema {
	return &OutputSchema{
		Name:        name,
		Description: "Suggested values for " + key,
		Schema: object(map[string]any{
			key: stringArray("Suggested "+key, map[string]any{"type": "string", "enum": vocab.Values()}),
		}),
	}
}

// RhythmicFeelSchema is the response shape for the single rhythmic feel suggestion
func RhythmicFeelSchema() *OutputSchema {
	return &OutputSchema{
		Name:        SchemaRhythmicFeel,
		Description: "One rhythmic technique that fits the genre and mood",
		Schema: object(map[string]any{
			"technique": stringProp("A single technique from the allowed list"),
		}),
	}
}

// InspireSchema is the response shape for a random fill of the given fields
func InspireSchema(fields []models.Field) *OutputSchema {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		if prop := fieldSchema(f); prop != nil {
			props[string(f)] = prop
		}
	}
	return &OutputSchema{
		Name:        SchemaInspire,
		Description: "Values for the unlocked form fields",
		Schema:      object(props),
	}
}

// DeconstructSchema is the response shape for turning a free text vibe into form values
func DeconstructSchema() *OutputSchema {
	fields := []models.Field{
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
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[string(f)] = fieldSchema(f)
	}
	return &OutputSchema{
		Name:        SchemaDeconstruct,
		Description: "Form values extracted from a description",
		Schema:      object(props),
	}
}

func fieldSchema(f models.Field) map[string]any {
	switch f {
	case models.FieldGenre, models.FieldMood, models.FieldVocals, models.FieldChords:
		vocab, _ := models.ScalarVocabulary(f)
		return enumProp("One value from the allowed list", vocab.Values())
	case models.FieldVibePreset:
		// Empty string means no preset
		return enumProp("A vibe preset name or an empty string", append([]string{""}, models.VibePresets.Values()...))
	case models.FieldInstruments, models.FieldTechniques, models.FieldSoundDesign:
		vocab, _ := models.ListVocabulary(f)
		return stringArray("Values from the allowed list", map[string]any{
			"type": "string",
			"enum": vocab.Values(),
		})
	case models.FieldTheme:
		return stringProp("A short evocative song theme")
	case models.FieldBPM:
		return stringProp("Tempo in beats per minute, as a number string")
	case models.FieldInfluences:
		return stringProp("Artists or styles as a comma separated list")
	case models.FieldLyrics:
		return stringProp("Song lyrics with section tags")
	case models.FieldSongStructure:
		return stringArray("Ordered song sections", object(map[string]any{
			"id":           stringProp("Any identifier"),
			"type":         enumProp("Section type", models.SectionTypes.Values()),
			"instructions": stringProp("Short arrangement note for the section"),
		}))
	case models.FieldTempoChange, models.FieldKeyChange:
		return map[string]any{"type": "boolean"}
	}
	return nil
}
