package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"

	revtpl "github.com/goliatone/go-revtpl"
	"github.com/goliatone/go-revtpl/pkg/config"
	"github.com/goliatone/go-revtpl/pkg/gitsource"
	"github.com/goliatone/go-revtpl/pkg/hexcounter"
	"github.com/goliatone/go-revtpl/pkg/render"
)

func main() {
	repoPath := flag.String("repo", ".", "path to the git repository")
	configPath := flag.String("config", "", "template-alias YAML file (built-in defaults if empty)")
	templateName := flag.String("template", "", "template to render (config default if empty)")
	rendererName := flag.String("renderer", "", "renderer to use: text or html (config default if empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "pick the template interactively")
	parallelism := flag.Int("parallelism", 1, "concurrent per-commit evaluations")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if err := run(logger, *repoPath, *configPath, *templateName, *rendererName, *output, *interactive, *parallelism); err != nil {
		logger.Fatal().Err(err).Msg("render failed")
	}
}

func run(logger zerolog.Logger, repoPath, configPath, templateName, rendererName, output string, interactive bool, parallelism int) error {
	ctx := context.Background()

	aliases := config.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		aliases = loaded
	}

	if interactive {
		chosen, err := pickTemplate(aliases, templateName)
		if err != nil {
			return err
		}
		templateName = chosen
	}

	tpl, ok := aliases.Template(templateName)
	if !ok {
		return fmt.Errorf("template %q not defined (available: %v)", templateName, aliases.Names())
	}

	if rendererName == "" {
		rendererName = aliases.DefaultRenderer
	}
	if rendererName == "" {
		rendererName = "text"
	}

	source, err := gitsource.Open(repoPath)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("repo", repoPath).
		Str("template", templateName).
		Str("renderer", rendererName).
		Msg("rendering log")

	rendered, err := revtpl.RenderLog(ctx, source, tpl,
		revtpl.WithExtension(hexcounter.New()),
		revtpl.WithRenderer(rendererName),
		revtpl.WithLogger(logger),
		revtpl.WithEvalOptions(render.EvalOptions{Parallelism: parallelism}),
	)
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, rendered, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info().Str("path", output).Msg("log written")
		return nil
	}
	fmt.Print(string(rendered))
	return nil
}

func pickTemplate(aliases *config.File, current string) (string, error) {
	names := aliases.Names()
	defaultName := current
	if defaultName == "" {
		defaultName = aliases.DefaultTemplate
	}

	prompt := &survey.Select{
		Message: "Choose a log template:",
		Options: names,
		Default: defaultName,
	}
	var choice string
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("pick template: %w", err)
	}
	return choice, nil
}
