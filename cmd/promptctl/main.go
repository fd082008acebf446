package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envPrefix = "STUDIO"

// Build flags
var version = ""
var commit = ""

func main() {
	// Create signal based context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Launch command
	cmd := newCommand(os.Stdin, os.Stdout)
	if err := cmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func newCommand(in io.Reader, out io.Writer) *ffcli.Command {
	fs := flag.NewFlagSet("promptctl", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "promptctl [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(out),
			newEncodeCommand(in, out),
			newDecodeCommand(in, out),
			newPresetCommand(in, out),
			newGenerateCommand(in, out),
		},
	}
}

func newVersionCommand(out io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "promptctl version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			_, err := fmt.Fprintln(out, strings.Join(versionFields, " "))
			return err
		},
	}
}

func newEncodeCommand(in io.Reader, out io.Writer) *ffcli.Command {
	cmd := "encode"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	var input string
	fs.StringVar(&input, "input", "", "snapshot JSON file (default stdin)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "promptctl encode [-input snapshot.json]",
		ShortHelp:  "turn a {inputs, lockedFields} JSON snapshot into a share token",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			data, err := readInput(in, input)
			if err != nil {
				return err
			}
			return runEncode(data, out)
		},
	}
}

func newDecodeCommand(in io.Reader, out io.Writer) *ffcli.Command {
	cmd := "decode"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "promptctl decode [token]",
		ShortHelp:  "print the snapshot inside a share token (token from argument or stdin)",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			token, err := tokenArg(in, args)
			if err != nil {
				return err
			}
			return runDecode(token, out)
		},
	}
}

func newPresetCommand(in io.Reader, out io.Writer) *ffcli.Command {
	cmd := "preset"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	var opts presetOptions
	fs.StringVar(&opts.Name, "name", "", "vibe preset name")
	fs.StringVar(&opts.Mode, "mode", "overwrite", "list merge mode: overwrite or merge")
	fs.StringVar(&opts.Token, "token", "", "share token to start from (default: the initial form)")
	fs.BoolVar(&opts.List, "list", false, "list preset names and exit")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "promptctl preset [flags]",
		ShortHelp:  "apply a vibe preset to a session and print the new share token",
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix(envPrefix),
		},
		FlagSet: fs,
		Exec: func(ctx context.Context, args []string) error {
			return runPreset(opts, out)
		},
	}
}

func newGenerateCommand(in io.Reader, out io.Writer) *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	var opts generateOptions
	fs.StringVar(&opts.Token, "token", "", "share token with the form to generate from (default: the initial form)")
	fs.StringVar(&opts.Model, "model", "gemini-2.5-flash", "model name")
	fs.StringVar(&opts.Provider, "provider", "", "provider override: gemini or openai")
	fs.StringVar(&opts.GeminiAPIKey, "gemini-api-key", "", "Gemini API key")
	fs.StringVar(&opts.OpenAIAPIKey, "openai-api-key", "", "OpenAI API key")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: "promptctl generate [flags]",
		ShortHelp:  "generate prompt variations for a session, one per line",
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithEnvVarPrefix(envPrefix),
		},
		FlagSet: fs,
		Exec: func(ctx context.Context, args []string) error {
			return runGenerate(ctx, opts, out)
		},
	}
}
