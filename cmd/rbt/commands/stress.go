package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
	"github.com/speckJ8/graph-algorithms/pkg/observability"
	"github.com/speckJ8/graph-algorithms/pkg/plot"
	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
)

const stressCommandName = "stress"

// ErrLeakedNodes is returned when teardown does not release every node.
var ErrLeakedNodes = errors.New("teardown left live nodes")

type stressCommand struct {
	sess *session

	count      int
	seed       int64
	checkEvery int
	duplicates bool

	format          string
	plotPath        string
	hibernate       bool
	metricsTextfile string
}

func newStressCommand(sess *session) *cobra.Command {
	sc := &stressCommand{sess: sess}

	cmd := &cobra.Command{
		Use:   stressCommandName,
		Short: "Insert random values and check the red-black invariants",
		Long: `Insert shuffled (or duplicate-heavy random) values into a red-black tree,
validate it periodically, then tear it down and report the rebalancing work.
Flags override the stress section of the config file.`,
		Args: cobra.NoArgs,
		RunE: sc.run,
	}

	cmd.Flags().IntVarP(&sc.count, "count", "n", 0, "Number of values to insert")
	cmd.Flags().Int64Var(&sc.seed, "seed", 0, "Random seed")
	cmd.Flags().IntVar(&sc.checkEvery, "check-every", 0, "Validate after this many inserts (0 = only at the end)")
	cmd.Flags().BoolVar(&sc.duplicates, "duplicates", false, "Draw values from a small range so many repeat")
	cmd.Flags().StringVar(&sc.format, "format", FormatTable, "Output format: table, yaml, json")
	cmd.Flags().StringVar(&sc.plotPath, "plot", "", "Write an HTML height chart to this file")
	cmd.Flags().BoolVar(&sc.hibernate, "hibernate", false, "Round-trip the arena through LZ4 before teardown")
	cmd.Flags().StringVar(&sc.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	return cmd
}

// applyConfig fills every flag the user did not set from the config file.
func (sc *stressCommand) applyConfig(cmd *cobra.Command) {
	cfg := sc.sess.cfg
	flags := cmd.Flags()

	if !flags.Changed("count") {
		sc.count = cfg.Stress.Count
	}

	if !flags.Changed("seed") {
		sc.seed = cfg.Stress.Seed
	}

	if !flags.Changed("check-every") {
		sc.checkEvery = cfg.Stress.CheckEvery
	}

	if !flags.Changed("duplicates") {
		sc.duplicates = cfg.Stress.Duplicates
	}

	if !flags.Changed("metrics-textfile") {
		sc.metricsTextfile = cfg.Telemetry.MetricsTextfile
	}
}

func (sc *stressCommand) run(cmd *cobra.Command, _ []string) error {
	sc.applyConfig(cmd)

	switch sc.format {
	case FormatTable, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, sc.format)
	}

	if sc.count <= 0 {
		return fmt.Errorf("count must be positive, got %d", sc.count)
	}

	providers := sc.sess.providers

	ctx, span := providers.Tracer.Start(cmd.Context(), "rbt.stress")
	defer span.End()

	span.SetAttributes(
		attribute.Int("rbt.count", sc.count),
		attribute.Int64("rbt.seed", sc.seed),
		attribute.Bool("rbt.duplicates", sc.duplicates),
	)

	metrics, err := observability.NewTreeMetrics(providers.Meter)
	if err != nil {
		return err
	}

	report, err := sc.execute(ctx, metrics)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	err = writeReport(cmd.OutOrStdout(), sc.format, report)
	if err != nil {
		return err
	}

	err = sc.writeArtifacts(ctx, report)
	if err != nil {
		return err
	}

	providers.Logger.InfoContext(ctx, "stress run complete",
		"nodes", report.Nodes,
		"height", report.Height,
		"rotations", report.Rotations,
		"elapsed", report.Elapsed,
	)

	return nil
}

func (sc *stressCommand) execute(ctx context.Context, metrics *observability.TreeMetrics) (*StressReport, error) {
	logger := sc.sess.providers.Logger
	start := time.Now()

	alloc := bintree.NewAllocator()
	alloc.HibernationThreshold = sc.sess.cfg.Arena.HibernationThreshold

	tree := rbtree.New(alloc, rbtree.WithObserver(metrics))
	report := &StressReport{Count: sc.count, Seed: sc.seed, Duplicates: sc.duplicates}

	for label, value := range sc.values() {
		tree.Insert(label, value)

		inserted := label + 1
		if inserted != sc.count && (sc.checkEvery == 0 || inserted%sc.checkEvery != 0) {
			continue
		}

		blackHeight, err := verify(tree)
		if err != nil {
			logger.ErrorContext(ctx, "validation failed", "nodes", inserted, "error", err)

			return nil, err
		}

		report.Validations++
		report.Samples = append(report.Samples, plot.Sample{
			Nodes:       inserted,
			Height:      tree.Height(),
			BlackHeight: blackHeight,
		})
		metrics.RecordShape(ctx, tree)

		logger.DebugContext(ctx, "checkpoint", "nodes", inserted, "height", tree.Height())
	}

	last := report.Samples[len(report.Samples)-1]
	stats := tree.Stats()

	report.Nodes = tree.Len()
	report.Height = last.Height
	report.BlackHeight = last.BlackHeight
	report.HeightBound = plot.HeightBound(tree.Len())
	report.Rotations = stats.Rotations
	report.Recolors = stats.Recolors
	report.RootChanges = stats.RootChanges
	report.ArenaBytes = alloc.ArenaBytes()

	if sc.hibernate {
		err := sc.roundTrip(ctx, tree, report)
		if err != nil {
			return nil, err
		}
	}

	released := tree.Close()
	report.ReleasedNodes = released.Nodes

	if released.Nodes != sc.count || alloc.Used() != 0 {
		return nil, fmt.Errorf("%w: released %d of %d, %d still live",
			ErrLeakedNodes, released.Nodes, sc.count, alloc.Used())
	}

	report.Elapsed = time.Since(start).Round(time.Millisecond).String()

	return report, nil
}

// roundTrip hibernates and boots the arena, then checks the tree survived.
func (sc *stressCommand) roundTrip(ctx context.Context, tree *rbtree.Tree, report *StressReport) error {
	alloc := tree.Allocator()

	tree.Hibernate()

	report.Hibernated = alloc.Hibernated()
	report.HibernatedBytes = alloc.HibernatedBytes()

	sc.sess.providers.Logger.DebugContext(ctx, "arena hibernated",
		"hibernated", report.Hibernated, "bytes", report.HibernatedBytes)

	err := tree.Boot()
	if err != nil {
		return fmt.Errorf("boot arena: %w", err)
	}

	_, err = verify(tree)

	return err
}

func (sc *stressCommand) values() []int {
	rng := rand.New(rand.NewSource(sc.seed)) //nolint:gosec // reproducible test data.

	if !sc.duplicates {
		return rng.Perm(sc.count)
	}

	spread := max(sc.count/4, 1)
	values := make([]int, sc.count)

	for idx := range values {
		values[idx] = rng.Intn(spread)
	}

	return values
}

func (sc *stressCommand) writeArtifacts(ctx context.Context, report *StressReport) error {
	logger := sc.sess.providers.Logger

	if sc.plotPath != "" {
		err := writePlot(sc.plotPath, report)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "height chart written", "path", sc.plotPath)
	}

	if sc.metricsTextfile != "" {
		err := observability.WriteTextfile(sc.metricsTextfile, sc.sess.providers.Registry)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "metrics written", "path", sc.metricsTextfile)
	}

	return nil
}

func writePlot(path string, report *StressReport) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	title := fmt.Sprintf("Red-black tree height, %d inserts (seed %d)", report.Count, report.Seed)

	return plot.Render(file, title, report.Samples)
}
