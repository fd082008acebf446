package services

// Operation names one kind of model call; it tags logs, traces and metrics
type Operation string

const (
	OpVariations   Operation = "variations"
	OpInspire      Operation = "inspire"
	OpInstruments  Operation = "suggest_instruments"
	OpTechniques   Operation = "suggest_techniques"
	OpSoundDesign  Operation = "suggest_sound_design"
	OpRhythmicFeel Operation = "rhythmic_feel"
	OpExpandTheme  Operation = "expand_theme"
	OpLyrics       Operation = "lyrics"
	OpDeconstruct  Operation = "deconstruct_vibe"
)

// Reasoning effort constants, as understood by llm.GenerationRequest.ReasoningMode
const (
	reasoningEffortNone    = "none"
	reasoningEffortMinimal = "minimal"
	reasoningEffortLow     = "low"
)

// LLMParameters is the per-operation model selection
type LLMParameters struct {
	Creative        bool   // use the creative model instead of the prompt model
	ReasoningEffort string // only applied by providers whose model supports it
}

// GetLLMParameters returns the parameters for an operation.
// Suggestions are latency sensitive and run with the least reasoning; lyrics go
// to the creative model.
func GetLLMParameters(op Operation) LLMParameters {
	switch op {
	case OpLyrics:
		return LLMParameters{Creative: true, ReasoningEffort: reasoningEffortLow}
	case OpInstruments, OpTechniques, OpSoundDesign, OpRhythmicFeel:
		return LLMParameters{ReasoningEffort: reasoningEffortNone}
	case OpVariations, OpInspire, OpDeconstruct:
		return LLMParameters{ReasoningEffort: reasoningEffortLow}
	default:
		return LLMParameters{ReasoningEffort: reasoningEffortMinimal}
	}
}
