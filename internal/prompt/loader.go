package prompt

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/prompt-studio-api/pkg/embedded"
)

// Template names, matching the files under pkg/embedded/data/prompts
const (
	TemplateVariations   = "variations"
	TemplateInspire      = "inspire"
	TemplateInstruments  = "instruments"
	TemplateTechniques   = "techniques"
	TemplateSoundDesign  = "sound_design"
	TemplateRhythmicFeel = "rhythmic_feel"
	TemplateExpandTheme  = "expand_theme"
	TemplateLyrics       = "lyrics"
	TemplateDeconstruct  = "deconstruct"
)

const templateExt = ".tmpl"

// Loader parses the embedded prompt templates
type Loader struct {
	fsys  fs.FS
	dir   string
	funcs template.FuncMap
}

// NewPromptLoader loads templates from the embedded prompt directory
func NewPromptLoader(funcs template.FuncMap) *Loader {
	return &Loader{fsys: embedded.PromptTemplates, dir: embedded.PromptDir, funcs: funcs}
}

// LoadAll parses every template in the directory, keyed by name without extension
func (l *Loader) LoadAll() (map[string]*template.Template, error) {
	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt templates: %w", err)
	}

	templates := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), templateExt)
		tmpl, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// Load parses a single template
func (l *Loader) Load(name string) (*template.Template, error) {
	raw, err := fs.ReadFile(l.fsys, path.Join(l.dir, name+templateExt))
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(l.funcs).Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
	}
	return tmpl, nil
}
