package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/llm"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/services"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/session"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

var errMissingToken = errors.New("missing share token")

type presetOptions struct {
	Name  string
	Mode  string
	Token string
	List  bool
}

type generateOptions struct {
	Token        string
	Model        string
	Provider     string
	GeminiAPIKey string
	OpenAIAPIKey string
}

func readInput(in io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}

func tokenArg(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// snapshotFromToken decodes a token, or returns the initial form for ""
func snapshotFromToken(token string) (models.Snapshot, error) {
	if token == "" {
		return models.Snapshot{Inputs: models.InitialFormState(), LockedFields: models.LockMap{}}, nil
	}
	return session.Decode(token)
}

func runEncode(data []byte, out io.Writer) error {
	snap, err := session.Unmarshal(data)
	if err != nil {
		return err
	}
	token, err := session.Encode(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func runDecode(token string, out io.Writer) error {
	snap, err := session.Decode(token)
	if err != nil {
		return err
	}
	return writeJSON(out, snap)
}

func runPreset(opts presetOptions, out io.Writer) error {
	if opts.List {
		for _, name := range models.VibePresets.Values() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil
	}
	if _, ok := models.LookupPreset(opts.Name); !ok {
		return fmt.Errorf("unknown preset %q", opts.Name)
	}
	mode, err := studio.ParseMergeMode(opts.Mode)
	if err != nil {
		return err
	}
	snap, err := snapshotFromToken(opts.Token)
	if err != nil {
		return err
	}

	snap.Inputs = studio.ApplyVibePreset(snap.Inputs, opts.Name, snap.LockedFields, mode)
	token, err := session.Encode(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func runGenerate(ctx context.Context, opts generateOptions, out io.Writer) error {
	snap, err := snapshotFromToken(opts.Token)
	if err != nil {
		return err
	}

	factory := llm.NewProviderFactory(opts.OpenAIAPIKey, opts.GeminiAPIKey)
	provider, err := factory.GetProvider(ctx, opts.Model, opts.Provider)
	if err != nil {
		return err
	}
	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		return err
	}
	generator := services.NewGenerator(provider, nil, services.GeneratorConfig{PromptModel: opts.Model}, builder, nil)

	return writeVariations(out, generator.GeneratePrompts(ctx, snap.Inputs))
}

func writeVariations(out io.Writer, variations []string) error {
	if len(variations) == 1 && variations[0] == services.PromptErrorMessage {
		return errors.New(services.PromptErrorMessage)
	}
	for _, v := range variations {
		if _, err := fmt.Fprintln(out, v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
