package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/llm"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/observability"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/prompt"
)

// PromptErrorMessage is returned as the only variation when generation fails
const PromptErrorMessage = "Error: Could not generate prompt variations. Please check your connection and try again."

var (
	ErrInvalidResponse = errors.New("invalid model response")
	ErrEmptyInput      = errors.New("empty input")
)

// GeneratorConfig selects the models used for each kind of call
type GeneratorConfig struct {
	PromptModel   string
	CreativeModel string
}

// Generator runs every model-backed studio operation. It implements both
// studio.Generator and studio.Suggester.
type Generator struct {
	prompts  llm.Provider
	creative llm.Provider
	cfg      GeneratorConfig
	builder  *prompt.Builder
	recorder *metrics.Recorder
}

// NewGenerator wires the providers. creative may be the same provider as prompts.
func NewGenerator(prompts, creative llm.Provider, cfg GeneratorConfig, builder *prompt.Builder, recorder *metrics.Recorder) *Generator {
	if creative == nil {
		creative = prompts
	}
	if cfg.CreativeModel == "" {
		cfg.CreativeModel = cfg.PromptModel
	}
	return &Generator{
		prompts:  prompts,
		creative: creative,
		cfg:      cfg,
		builder:  builder,
		recorder: recorder,
	}
}

// GeneratePrompts asks for prompt variations. Failures collapse into a single
// user-facing error string.
func (g *Generator) GeneratePrompts(ctx context.Context, inputs models.FormState) []string {
	variations, err := g.generatePrompts(ctx, inputs)
	if err != nil {
		logger.Error("Prompt generation failed", err, logger.Fields{"genre": inputs.Genre})
		return []string{PromptErrorMessage}
	}
	return variations
}

func (g *Generator) generatePrompts(ctx context.Context, inputs models.FormState) ([]string, error) {
	text, err := g.builder.Variations(inputs)
	if err != nil {
		return nil, err
	}
	raw, err := g.call(ctx, OpVariations, text, llm.VariationsSchema())
	if err != nil {
		return nil, err
	}

	values, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	variations, ok := stringList(values["variations"])
	if !ok {
		return nil, fmt.Errorf("%w: variations is not an array", ErrInvalidResponse)
	}
	return variations, nil
}

// Inspire fills every field not present in locked (lyrics excepted)
func (g *Generator) Inspire(ctx context.Context, locked models.FormPatch) (models.FormPatch, error) {
	fields := InspireFields(locked)
	if len(fields) == 0 {
		return models.FormPatch{}, nil
	}

	text, err := g.builder.Inspire(locked, fields)
	if err != nil {
		return models.FormPatch{}, err
	}
	raw, err := g.call(ctx, OpInspire, text, llm.InspireSchema(fields))
	if err != nil {
		return models.FormPatch{}, err
	}

	values, err := decodeObject(raw)
	if err != nil {
		return models.FormPatch{}, err
	}
	return ValidateInspire(values, fields), nil
}

// SuggestInstruments suggests instruments for a genre and mood
func (g *Generator) SuggestInstruments(ctx context.Context, genre, mood string) ([]string, error) {
	return g.suggest(ctx, OpInstruments, models.FieldInstruments, llm.SchemaInstruments, "instruments", genre, mood)
}

// SuggestTechniques suggests production techniques for a genre and mood
func (g *Generator) SuggestTechniques(ctx context.Context, genre, mood string) ([]string, error) {
	return g.suggest(ctx, OpTechniques, models.FieldTechniques, llm.SchemaTechniques, "techniques", genre, mood)
}

// SuggestSoundDesigns suggests sound design elements for a genre and mood
func (g *Generator) SuggestSoundDesigns(ctx context.Context, genre, mood string) ([]string, error) {
	return g.suggest(ctx, OpSoundDesign, models.FieldSoundDesign, llm.SchemaSoundDesigns, "soundDesigns", genre, mood)
}

func (g *Generator) suggest(
	ctx context.Context, op Operation, field models.Field, schemaName, key, genre, mood string,
) ([]string, error) {
	if genre == "" {
		return []string{}, nil
	}

	text, err := g.builder.Suggestions(field, genre, mood)
	if err != nil {
		return nil, err
	}
	vocab, _ := models.ListVocabulary(field)
	raw, err := g.call(ctx, op, text, llm.SuggestionSchema(schemaName, key, vocab))
	if err != nil {
		return nil, err
	}

	values, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	list, ok := stringList(values[key])
	if !ok {
		return nil, fmt.Errorf("%w: missing %q array", ErrInvalidResponse, key)
	}
	return vocab.Filter(list), nil
}

// SuggestRhythmicFeel returns one technique for the genre and mood, or "" when
// the model fails or answers outside the technique list
func (g *Generator) SuggestRhythmicFeel(ctx context.Context, genre, mood string) string {
	if genre == "" {
		return ""
	}

	text, err := g.builder.RhythmicFeel(genre, mood)
	if err != nil {
		logger.Error("Failed to build rhythmic feel prompt", err, nil)
		return ""
	}
	raw, err := g.call(ctx, OpRhythmicFeel, text, llm.RhythmicFeelSchema())
	if err != nil {
		logger.Warn("Rhythmic feel suggestion failed", logger.Fields{"error": err.Error()})
		return ""
	}

	values, err := decodeObject(raw)
	if err != nil {
		logger.Warn("Rhythmic feel response was not valid JSON", logger.Fields{"error": err.Error()})
		return ""
	}
	var technique string
	if err := json.Unmarshal(values["technique"], &technique); err != nil || !models.Techniques.Contains(technique) {
		return ""
	}
	return technique
}

// ExpandTheme rewrites a short theme into a richer scenario
func (g *Generator) ExpandTheme(ctx context.Context, theme string) (string, error) {
	if strings.TrimSpace(theme) == "" {
		return "", fmt.Errorf("%w: theme", ErrEmptyInput)
	}
	text, err := g.builder.ExpandTheme(theme)
	if err != nil {
		return "", err
	}
	return g.freeText(ctx, OpExpandTheme, text)
}

// GenerateLyrics writes lyrics with section tags using the creative model
func (g *Generator) GenerateLyrics(ctx context.Context, theme, mood, genre string) (string, error) {
	text, err := g.builder.Lyrics(theme, mood, genre)
	if err != nil {
		return "", err
	}
	return g.freeText(ctx, OpLyrics, text)
}

// DeconstructVibe analyses a free-text description into form values
func (g *Generator) DeconstructVibe(ctx context.Context, description string) (models.FormPatch, error) {
	if strings.TrimSpace(description) == "" {
		return models.FormPatch{}, fmt.Errorf("%w: description", ErrEmptyInput)
	}
	text, err := g.builder.Deconstruct(description)
	if err != nil {
		return models.FormPatch{}, err
	}
	raw, err := g.call(ctx, OpDeconstruct, text, llm.DeconstructSchema())
	if err != nil {
		return models.FormPatch{}, err
	}
	values, err := decodeObject(raw)
	if err != nil {
		return models.FormPatch{}, err
	}
	return ValidateDeconstruction(values), nil
}

func (g *Generator) freeText(ctx context.Context, op Operation, text string) (string, error) {
	out, err := g.call(ctx, op, text, nil)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty text", ErrInvalidResponse)
	}
	return out, nil
}

// call runs one model request with tracing, logging and metrics around it
func (g *Generator) call(ctx context.Context, op Operation, text string, schema *llm.OutputSchema) (string, error) {
	params := GetLLMParameters(op)
	provider, model := g.prompts, g.cfg.PromptModel
	if params.Creative {
		provider, model = g.creative, g.cfg.CreativeModel
	}

	input := []map[string]any{llm.UserMessage(text)}
	trace := observability.GetClient().StartTrace(ctx, "studio."+string(op), map[string]interface{}{
		"operation": string(op),
		"model":     model,
	})
	defer trace.Finish()
	generation := trace.Generation(string(op), map[string]interface{}{"structured": schema != nil})
	defer generation.Finish()

	start := time.Now()
	resp, err := provider.Generate(ctx, &llm.GenerationRequest{
		Model:         model,
		InputArray:    input,
		ReasoningMode: params.ReasoningEffort,
		OutputSchema:  schema,
	})
	duration := time.Since(start)

	if err != nil {
		generation.Fail(err)
		g.recorder.RecordGeneration(ctx, string(op), metrics.Usage{}, duration, false)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if resp.Model == "" {
		resp.Model = model
	}
	if resp.Provider == "" {
		resp.Provider = provider.Name()
	}
	generation.LogResponse(input, resp, nil)
	logger.LogGenerationRequest(ctx, string(op), resp.Model, duration, resp.Usage.AsMap(), logger.Fields{
		"provider": resp.Provider,
	})
	g.recorder.RecordGeneration(ctx, string(op), metrics.Usage{
		Model:           resp.Model,
		Provider:        resp.Provider,
		InputTokens:     resp.Usage.InputTokens,
		OutputTokens:    resp.Usage.OutputTokens,
		ReasoningTokens: resp.Usage.ReasoningTokens,
		TotalTokens:     resp.Usage.TotalTokens,
	}, duration, true)

	return resp.RawOutput, nil
}

func decodeObject(raw string) (map[string]json.RawMessage, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return values, nil
}
