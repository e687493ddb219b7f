package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flowset/flowset/internal/graph"
)

// RPOReport is the JSON payload of an rpo run.
type RPOReport struct {
	Order       []RankedNode `json:"order"`
	Unreachable []int        `json:"unreachable,omitempty"`
}

// RankedNode pairs a node ID with its reverse-postorder rank.
type RankedNode struct {
	Rank int `json:"rank"`
	ID   int `json:"id"`
}

// NewRPOCommand creates the rpo command.
func NewRPOCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpo <graph-file>",
		Short: "Print the reverse-postorder schedule of a graph",
		Long: `Rpo loads a graph definition and prints each reachable node with its
reverse-postorder rank, the order the analysis prefers when draining
its worklist. Unreachable nodes are listed separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRPO(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runRPO(cmd *cobra.Command, opts *RootOptions, path string) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	def, err := LoadGraph(path, cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(classifyError(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot load graph", err)
	}
	g, err := def.Build()
	if err != nil {
		_ = formatter.Error(classifyError(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid graph", err)
	}

	report := rpoReport(g)
	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	for _, rn := range report.Order {
		fmt.Fprintf(formatter.Writer, "%d %d\n", rn.Rank, rn.ID)
	}
	for _, id := range report.Unreachable {
		fmt.Fprintf(formatter.Writer, "- %d\n", id)
	}
	return nil
}

// rpoReport computes the rank-ordered schedule and the unreachable set.
func rpoReport(g *graph.Graph) RPOReport {
	ranks := g.ReversePostorder()

	var report RPOReport
	for i, rank := range ranks {
		id := g.Node(i).ID
		if rank == graph.UnrankedNode {
			report.Unreachable = append(report.Unreachable, id)
			continue
		}
		report.Order = append(report.Order, RankedNode{Rank: rank, ID: id})
	}
	sort.Slice(report.Order, func(i, j int) bool {
		return report.Order[i].Rank < report.Order[j].Rank
	})
	sort.Ints(report.Unreachable)
	return report
}
