package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// app holds the state shared by all subcommands.
type app struct {
	logLevel  string
	logFormat string
	trace     bool

	log      *slog.Logger
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tilewave",
		Short: "Generate tile maps from an example by wave function collapse",
		Long: `tilewave learns the local patterns of a small text map and synthesises
larger maps in which every neighbourhood also occurs in the example.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	pf.BoolVar(&a.trace, "trace", false, "print generation spans to stderr")

	root.AddCommand(newGenerateCmd(a), newInspectCmd(a))

	return root
}

// setup configures logging and tracing from the persistent flags.
func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	hopts := &slog.HandlerOptions{Level: level}
	switch a.logFormat {
	case "text":
		a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), hopts))
	case "json":
		a.log = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts))
	default:
		return fmt.Errorf("--log-format: unknown format %q", a.logFormat)
	}

	if !a.trace {
		return nil
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(cmd.ErrOrStderr()),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("create span exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	a.tp, a.shutdown = tp, tp.Shutdown

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return a.shutdown(ctx)
}
