// Package commands implements the rbt subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/speckJ8/graph-algorithms/pkg/config"
	"github.com/speckJ8/graph-algorithms/pkg/observability"
	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
	"github.com/speckJ8/graph-algorithms/pkg/version"
)

// ErrInvariantViolation marks a tree that failed validation.
var ErrInvariantViolation = errors.New("red-black invariant violated")

// envOTLPHeaders is the standard OTel variable for exporter headers.
const envOTLPHeaders = "OTEL_EXPORTER_OTLP_HEADERS"

// session is the state shared by a command run.
type session struct {
	configPath string
	logJSON    bool
	verbose    bool
	noColor    bool

	cfg       *config.Config
	providers observability.Providers
}

// NewRootCommand creates the rbt command tree.
func NewRootCommand() *cobra.Command {
	sess := &session{}

	root := &cobra.Command{
		Use:   "rbt",
		Short: "Red-black tree workbench",
		Long: `rbt builds red-black trees on a parent-linked node arena, prints them,
and stress tests the insertion fix-up against the red-black invariants.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: sess.open,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.close(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&sess.configPath, "config", "", "Config file (default: rbt.yaml in ., ./config, ~/.config/rbt)")
	root.PersistentFlags().BoolVar(&sess.logJSON, "log-json", false, "Emit logs as JSON")
	root.PersistentFlags().BoolVarP(&sess.verbose, "verbose", "v", false, "Enable debug logs")
	root.PersistentFlags().BoolVar(&sess.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newBuildCommand(sess))
	root.AddCommand(newStressCommand(sess))
	root.AddCommand(newVersionCommand())

	return root
}

func (sess *session) open(cmd *cobra.Command, _ []string) error {
	if sess.noColor {
		color.NoColor = true
	}

	cfg, err := config.LoadConfig(sess.configPath)
	if err != nil {
		return err
	}

	sess.cfg = cfg

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = cfg.Telemetry.ServiceName
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))
	obsCfg.LogLevel = cfg.LogLevel()
	obsCfg.LogJSON = sess.logJSON || cfg.JSONLogs()
	obsCfg.LogWriter = cmd.ErrOrStderr()

	if cmd.Name() == stressCommandName {
		obsCfg.Mode = observability.ModeStress
	}

	if sess.verbose {
		obsCfg.DebugTrace = true
		obsCfg.LogLevel = slog.LevelDebug
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	sess.providers = providers

	return nil
}

func (sess *session) close(ctx context.Context) error {
	if sess.providers.Shutdown == nil {
		return nil
	}

	return sess.providers.Shutdown(ctx)
}

// verify validates tree and tags any failure as an invariant violation.
func verify(tree *rbtree.Tree) (int, error) {
	blackHeight, err := rbtree.BlackHeight(tree.Root())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}

	return blackHeight, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version needs neither config nor telemetry.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
