package prompt

import (
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadAll(t *testing.T) {
	loader := NewPromptLoader(template.FuncMap{
		"join":      joinList,
		"guideline": inspireGuideline,
	})

	templates, err := loader.LoadAll()
	require.NoError(t, err)

	for _, name := range []string{
		TemplateVariations,
		TemplateInspire,
		TemplateInstruments,
		TemplateTechniques,
		TemplateSoundDesign,
		TemplateRhythmicFeel,
		TemplateExpandTheme,
		TemplateLyrics,
		TemplateDeconstruct,
	} {
		assert.Contains(t, templates, name)
	}
}

func TestLoaderMissingTemplate(t *testing.T) {
	loader := NewPromptLoader(template.FuncMap{"join": joinList, "guideline": inspireGuideline})
	_, err := loader.Load("does_not_exist")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "does_not_exist"))
}

func TestLoaderNeedsFuncs(t *testing.T) {
	// Templates reference join; parsing without it must fail loudly
	loader := NewPromptLoader(nil)
	_, err := loader.Load(TemplateVariations)
	assert.Error(t, err)
}
