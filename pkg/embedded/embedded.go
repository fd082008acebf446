package embedded

import (
	"embed"
)

// PromptTemplates holds the text/template sources for every model instruction
//
//go:embed data/prompts/*.tmpl
var PromptTemplates embed.FS

// PromptDir is the directory inside PromptTemplates holding the templates
const PromptDir = "data/prompts"
