package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/djboot-dev/djboot/internal/boilerplate"
	"github.com/djboot-dev/djboot/internal/config"
	"github.com/djboot-dev/djboot/internal/dev"
	"github.com/djboot-dev/djboot/internal/errors"
	"github.com/djboot-dev/djboot/internal/features"
	"github.com/djboot-dev/djboot/internal/manifest"
	"github.com/djboot-dev/djboot/internal/python"
	"github.com/djboot-dev/djboot/internal/source"
)

func installCmd() *cobra.Command {
	var (
		docs        bool
		cors        bool
		rest        bool
		unfold      bool
		all         bool
		sourceDir   string
		s3Bucket    string
		s3Key       string
		skipPrompts bool
		noRun       bool
	)

	cmd := &cobra.Command{
		Use:   "install <directory>",
		Short: "Materialize the Django boilerplate into a directory",
		Long: `Materialize the Django boilerplate into the given directory,
tailored to the selected features, then set up the Python environment
and start the development server.

Features:
  docs      Swagger API documentation (drf-yasg)
  cors      CORS headers middleware
  rest      Django REST Framework
  unfold    Unfold admin with a custom accounts app

With no feature flags, an interactive picker is shown. --all enables
every feature regardless of the other flags.

Examples:
  djboot install myproject --all
  djboot install myproject --rest --docs
  djboot install myproject --source=../boilerplate --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := features.Flags{
				Docs:   docs,
				CORS:   cors,
				REST:   rest,
				Unfold: unfold,
				All:    all,
			}
			return runInstall(cmd.Context(), args[0], flags, installOptions{
				sourceDir:   sourceDir,
				s3Bucket:    s3Bucket,
				s3Key:       s3Key,
				skipPrompts: skipPrompts,
				noRun:       noRun,
			})
		},
	}

	cmd.Flags().BoolVar(&docs, "docs", false, "Include Swagger API docs")
	cmd.Flags().BoolVar(&cors, "cors", false, "Include CORS headers")
	cmd.Flags().BoolVar(&rest, "rest", false, "Include Django REST Framework")
	cmd.Flags().BoolVar(&unfold, "unfold", false, "Include the Unfold admin and accounts app")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include every feature")
	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Local boilerplate directory (default from djboot.json)")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket holding the boilerplate archive")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "S3 key of the boilerplate archive")
	cmd.Flags().BoolVarP(&skipPrompts, "yes", "y", false, "Skip prompts and use the flags as given")
	cmd.Flags().BoolVar(&noRun, "no-run", false, "Do not start the development server afterwards")

	return cmd
}

type installOptions struct {
	sourceDir   string
	s3Bucket    string
	s3Key       string
	skipPrompts bool
	noRun       bool
}

func runInstall(ctx context.Context, dest string, flags features.Flags, opts installOptions) error {
	printBanner()
	fmt.Println("  Installing the Django boilerplate...")
	fmt.Println()

	destDir, err := filepath.Abs(dest)
	if err != nil {
		return errors.New("E002").WithPath(dest).Wrap(err)
	}

	if !opts.skipPrompts && !flags.All && !flags.Any() {
		flags, err = promptForFeatures()
		if err != nil {
			return err
		}
	}
	flags = flags.Resolve()

	if names := flags.EnabledNames(); len(names) > 0 {
		info("Features: %v", names)
	} else {
		info("Features: none (base project only)")
	}

	// Source defaults may live in a djboot.json next to where the command
	// runs, not in the (still empty) destination.
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	tracer := otel.Tracer("djboot/install")
	ctx, span := tracer.Start(ctx, "install",
		trace.WithAttributes(
			attribute.String("dest", destDir),
			attribute.StringSlice("features", flags.EnabledNames()),
		))
	defer span.End()

	mat := boilerplate.NewMaterializer(manifest.Default())

	// Refuse a non-empty destination before any other work happens.
	if err := mat.CheckDestination(destDir); err != nil {
		return fail(span, err)
	}

	src, workDir, cleanup, err := resolveSource(ctx, cfg, opts)
	if err != nil {
		return fail(span, err)
	}
	defer cleanup()

	srcDir, err := step(ctx, tracer, "fetch source", func(ctx context.Context) (string, error) {
		info("Fetching boilerplate...")
		return src.Fetch(ctx, workDir)
	})
	if err != nil {
		return fail(span, err)
	}

	if _, err := step(ctx, tracer, "materialize", func(ctx context.Context) (string, error) {
		info("Materializing project tree...")
		return "", mat.Apply(srcDir, destDir, flags)
	}); err != nil {
		return fail(span, err)
	}

	tc := python.NewToolchain(destDir)
	pySteps := []struct {
		name string
		msg  string
		run  func(context.Context) error
	}{
		{"ensure poetry", "Checking Poetry...", tc.EnsurePoetry},
		{"create venv", "Creating virtual environment...", tc.CreateVenv},
		{"poetry install", "Installing Python dependencies...", tc.InstallDeps},
	}
	for _, st := range pySteps {
		if _, err := step(ctx, tracer, st.name, func(ctx context.Context) (string, error) {
			info(st.msg)
			return "", st.run(ctx)
		}); err != nil {
			return fail(span, err)
		}
	}

	if _, err := step(ctx, tracer, "write env file", func(ctx context.Context) (string, error) {
		info("Writing .env...")
		return "", boilerplate.WriteEnvFile(destDir)
	}); err != nil {
		return fail(span, err)
	}

	// Formatting is cosmetic; a missing or failing black should not undo a
	// finished install.
	if _, err := step(ctx, tracer, "format", func(ctx context.Context) (string, error) {
		info("Formatting with black...")
		return "", tc.Format(ctx)
	}); err != nil {
		warn("Could not format with black: %v", err)
	}

	fmt.Println()
	success("Installed %s/", dest)
	fmt.Println()

	if opts.noRun {
		fmt.Println("  To get started:")
		fmt.Println()
		fmt.Printf("    cd %s\n", dest)
		fmt.Println("    djboot dev")
		fmt.Println()
		return nil
	}

	cfg, err = config.Load(destDir)
	if err != nil {
		return err
	}
	return runDevServer(ctx, cfg)
}

// promptForFeatures shows the interactive feature picker.
func promptForFeatures() (features.Flags, error) {
	options := make([]string, 0, len(features.Names))
	for _, name := range features.Names {
		options = append(options, name)
	}

	var picked []string
	prompt := &survey.MultiSelect{
		Message: "Which features do you want?",
		Options: options,
		Help:    "Space to toggle, enter to confirm. Picking nothing installs the base project.",
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return features.Flags{}, err
	}
	return features.FromNames(picked), nil
}

// resolveSource picks the boilerplate source from flags and config, most
// specific first: --source, then --s3-bucket/--s3-key, then djboot.json. The
// returned workDir is scratch space for remote fetches; cleanup removes it.
func resolveSource(ctx context.Context, cfg *config.Config, opts installOptions) (source.Source, string, func(), error) {
	noop := func() {}

	if opts.sourceDir != "" {
		return &source.LocalSource{Dir: opts.sourceDir}, "", noop, nil
	}

	bucket, key := opts.s3Bucket, opts.s3Key
	if bucket == "" && key == "" {
		bucket, key = cfg.Source.S3Bucket, cfg.Source.S3Key
	}
	if bucket != "" && key != "" {
		s3src, err := source.NewS3SourceFromEnv(ctx, bucket, key)
		if err != nil {
			return nil, "", noop, err
		}
		workDir, err := os.MkdirTemp("", "djboot-*")
		if err != nil {
			return nil, "", noop, errors.New("E021").Wrap(err)
		}
		return s3src, workDir, func() { os.RemoveAll(workDir) }, nil
	}

	if cfg.Source.Dir != "" {
		return &source.LocalSource{Dir: cfg.Source.Dir}, "", noop, nil
	}

	// Default to the working directory: the classic workflow runs the
	// installer from inside a boilerplate checkout.
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", noop, errors.New("E020").Wrap(err)
	}
	return &source.LocalSource{Dir: wd}, "", noop, nil
}

// step runs fn inside a child span, recording failures on it.
func step(ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) (string, error)) (string, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	out, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return out, err
}

// fail marks the install span failed and passes the error through.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// runDevServer hands the terminal over to the development server.
func runDevServer(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
	}()

	server, err := dev.NewServer(cfg)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
