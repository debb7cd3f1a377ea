package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
	"github.com/speckJ8/graph-algorithms/pkg/rbtree"
)

// Build command errors.
var (
	ErrNoValues     = errors.New("no values given, pass values or --demo")
	ErrInvalidValue = errors.New("invalid order value")
)

// demoValues is the insertion sequence of the reference tree.
var demoValues = []int{11, 10, 4, 16, 13, 7, 1, 15, 3, 15}

type buildCommand struct {
	sess  *session
	demo  bool
	finds []int
}

func newBuildCommand(sess *session) *cobra.Command {
	bc := &buildCommand{sess: sess}

	cmd := &cobra.Command{
		Use:   "build [values...]",
		Short: "Build a red-black tree and print it",
		Long: `Build a red-black tree from the given order values, in order, and print it
one node per line. Node labels are the insertion positions.`,
		Example: "  rbt build 5 3 8 1\n  rbt build --demo --find 15",
		RunE:    bc.run,
	}

	cmd.Flags().BoolVar(&bc.demo, "demo", false, "Use the reference sequence 11 10 4 16 13 7 1 15 3 15")
	cmd.Flags().IntSliceVar(&bc.finds, "find", nil, "Look up order values after building")

	return cmd
}

func (bc *buildCommand) run(cmd *cobra.Command, args []string) error {
	values, err := bc.values(args)
	if err != nil {
		return err
	}

	logger := bc.sess.providers.Logger
	ctx, span := bc.sess.providers.Tracer.Start(cmd.Context(), "rbt.build")
	defer span.End()

	tree := rbtree.New(bintree.NewAllocator())
	defer tree.Close()

	for label, value := range values {
		tree.Insert(label, value)
	}

	logger.DebugContext(ctx, "tree built", "nodes", tree.Len(), "rotations", tree.Stats().Rotations)

	out := cmd.OutOrStdout()

	err = rbtree.Show(out, tree.Root())
	if err != nil {
		return err
	}

	blackHeight, err := verify(tree)
	if err != nil {
		fmt.Fprintln(out, color.RedString("invalid: %v", err))

		return err
	}

	fmt.Fprintln(out, color.GreenString("valid: %d nodes, height %d, black height %d",
		tree.Len(), tree.Height(), blackHeight))

	for _, value := range bc.finds {
		found := tree.Find(value)
		if found.IsNil() {
			fmt.Fprintf(out, "find %d: not found\n", value)

			continue
		}

		fmt.Fprintf(out, "find %d: label %d\n", value, found.Label())
	}

	return nil
}

func (bc *buildCommand) values(args []string) ([]int, error) {
	if bc.demo {
		return append([]int(nil), demoValues...), nil
	}

	if len(args) == 0 {
		return nil, ErrNoValues
	}

	values := make([]int, len(args))

	for idx, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidValue, arg, err)
		}

		values[idx] = value
	}

	return values, nil
}
