package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
)

const (
	metricInserts        = "rbt.inserts"
	metricRotations      = "rbt.rotations"
	metricRecolors       = "rbt.recolors"
	metricRootChanges    = "rbt.root.changes"
	metricInsertDuration = "rbt.insert.duration"
	metricNodes          = "rbt.nodes"
	metricHeight         = "rbt.height"
	metricArenaBytes     = "rbt.arena.bytes"
)

// insertBucketBoundaries covers 100ns to 10ms in seconds.
var insertBucketBoundaries = []float64{1e-7, 2.5e-7, 5e-7, 1e-6, 2.5e-6, 5e-6, 1e-5, 1e-4, 1e-3, 1e-2}

// TreeMetrics records red-black tree activity. It implements
// [rbtree.Observer].
type TreeMetrics struct {
	inserts        metric.Int64Counter
	rotations      metric.Int64Counter
	recolors       metric.Int64Counter
	rootChanges    metric.Int64Counter
	insertDuration metric.Float64Histogram
	nodes          metric.Int64Gauge
	height         metric.Int64Gauge
	arenaBytes     metric.Int64Gauge
}

var _ rbtree.Observer = (*TreeMetrics)(nil)

// NewTreeMetrics creates the tree instruments from mt.
func NewTreeMetrics(mt metric.Meter) (*TreeMetrics, error) {
	var (
		tm  TreeMetrics
		err error
	)

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
		unit   string
	}{
		{&tm.inserts, metricInserts, "Nodes inserted", "{node}"},
		{&tm.rotations, metricRotations, "Rotations performed by the insert fix-up", "{rotation}"},
		{&tm.recolors, metricRecolors, "Recolorings performed by the insert fix-up", "{recolor}"},
		{&tm.rootChanges, metricRootChanges, "Inserts that promoted a new root", "{insert}"},
	}

	for _, c := range counters {
		*c.target, err = mt.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", c.name, err)
		}
	}

	tm.insertDuration, err = mt.Float64Histogram(metricInsertDuration,
		metric.WithDescription("Time spent in one insert including the fix-up"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(insertBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInsertDuration, err)
	}

	gauges := []struct {
		target *metric.Int64Gauge
		name   string
		desc   string
		unit   string
	}{
		{&tm.nodes, metricNodes, "Live nodes in the tree", "{node}"},
		{&tm.height, metricHeight, "Nodes on the longest root-to-leaf path", "{node}"},
		{&tm.arenaBytes, metricArenaBytes, "Memory reserved by the node arena", "By"},
	}

	for _, g := range gauges {
		*g.target, err = mt.Int64Gauge(g.name, metric.WithDescription(g.desc), metric.WithUnit(g.unit))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", g.name, err)
		}
	}

	return &tm, nil
}

// ObserveInsert records one insertion.
func (tm *TreeMetrics) ObserveInsert(event rbtree.InsertEvent) {
	ctx := context.Background()

	tm.inserts.Add(ctx, 1)
	tm.rotations.Add(ctx, int64(event.Rotations))
	tm.recolors.Add(ctx, int64(event.Recolors))

	if event.RootChanged {
		tm.rootChanges.Add(ctx, 1)
	}

	tm.insertDuration.Record(ctx, event.Duration.Seconds())
}

// RecordShape records the current size of tree.
func (tm *TreeMetrics) RecordShape(ctx context.Context, tree *rbtree.Tree) {
	tm.nodes.Record(ctx, int64(tree.Len()))
	tm.height.Record(ctx, int64(tree.Height()))
	tm.arenaBytes.Record(ctx, int64(tree.Allocator().ArenaBytes())) //nolint:gosec // arena size is far below MaxInt64.
}
