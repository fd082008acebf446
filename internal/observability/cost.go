package observability

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/llm"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	defaultPricingModel = "gemini-2.5-flash"

	// Gemini 2.5 Flash pricing
	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	// Gemini 2.5 Pro pricing (prompts up to 200K tokens)
	gemini25ProInputPrice  = 0.00125
	gemini25ProOutputPrice = 0.01

	// GPT-5.1 pricing
	gpt51InputPrice  = 0.001
	gpt51OutputPrice = 0.003

	// GPT-5.1-mini pricing
	gpt51MiniInputPrice  = 0.0005
	gpt51MiniOutputPrice = 0.0015

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
	// Gemini reports thinking tokens outside the candidate count and bills them as output.
	// OpenAI already includes reasoning tokens in output_tokens.
	BillReasoningSeparately bool
}

// PricingTable contains pricing for all models
var PricingTable = map[string]ModelPricing{
	"gemini-2.5-flash": {
		InputPricePer1K:         gemini25FlashInputPrice,
		OutputPricePer1K:        gemini25FlashOutputPrice,
		BillReasoningSeparately: true,
	},
	"gemini-2.5-pro": {
		InputPricePer1K:         gemini25ProInputPrice,
		OutputPricePer1K:        gemini25ProOutputPrice,
		BillReasoningSeparately: true,
	},
	"gpt-5.1": {
		InputPricePer1K:  gpt51InputPrice,
		OutputPricePer1K: gpt51OutputPrice,
	},
	"gpt-5.1-mini": {
		InputPricePer1K:  gpt51MiniInputPrice,
		OutputPricePer1K: gpt51MiniOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
}

// PricingFor returns the pricing for a model. Unknown models fall back to the
// closest family entry, then to Gemini 2.5 Flash.
func PricingFor(model string) ModelPricing {
	if pricing, ok := PricingTable[model]; ok {
		return pricing
	}
	switch {
	case strings.HasPrefix(model, "gemini-") && strings.Contains(model, "pro"):
		return PricingTable["gemini-2.5-pro"]
	case strings.HasPrefix(model, "gemini-"):
		return PricingTable["gemini-2.5-flash"]
	case strings.HasPrefix(model, "gpt-") && strings.Contains(model, "mini"):
		return PricingTable["gpt-5.1-mini"]
	case strings.HasPrefix(model, "gpt-"):
		return PricingTable["gpt-5.1"]
	}
	return PricingTable[defaultPricingModel]
}

// CalculateCost calculates the cost in USD for one LLM call
func CalculateCost(model string, usage llm.TokenUsage) float64 {
	pricing := PricingFor(model)

	inputCost := (float64(usage.InputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	reasoningCost := 0.0
	if pricing.BillReasoningSeparately && usage.ReasoningTokens > 0 {
		reasoningCost = (float64(usage.ReasoningTokens) / tokensPerKilo) * pricing.OutputPricePer1K
	}

	return inputCost + outputCost + reasoningCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
