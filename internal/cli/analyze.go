package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowset/flowset/internal/engine"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Trace     bool
	MaxPasses int
}

// NodeSets is one node's converged sets in the JSON report.
type NodeSets struct {
	ID     int   `json:"id"`
	Input  []int `json:"input"`
	Output []int `json:"output"`
}

// AnalyzeReport is the JSON payload of a successful analyze run.
type AnalyzeReport struct {
	RunToken string             `json:"run_token"`
	Passes   int                `json:"passes"`
	Nodes    []NodeSets         `json:"nodes"`
	Trace    []engine.PassEvent `json:"trace,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <graph-file>",
		Short: "Run the fixpoint analysis over a graph definition",
		Long: `Analyze loads a graph definition (plain text, a .cue file, or a CUE
package directory; "-" reads text from stdin), runs the worklist
fixpoint, and prints the converged input set of every node.

Text output is one line per node in ascending ID order: the node ID
followed by its flow values, space-separated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "record and emit per-pass trace events")
	cmd.Flags().IntVar(&opts.MaxPasses, "max-passes", 0, "override the pass budget (0 = derived from graph size)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, path string) error {
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

	engOpts := []engine.Option{}
	var rec *engine.Recorder
	if opts.Trace {
		rec = engine.NewRecorder()
		engOpts = append(engOpts, engine.WithRecorder(rec))
	}
	if opts.MaxPasses > 0 {
		engOpts = append(engOpts, engine.WithMaxPasses(opts.MaxPasses))
	}

	result, err := engine.New(g, engOpts...).Analyze()
	if err != nil {
		_ = formatter.Error(classifyError(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "analysis aborted", err)
	}

	formatter.VerboseLog("run %s converged in %d passes", result.RunToken(), result.Passes())
	return outputAnalyzeResult(formatter, result, rec)
}

// outputAnalyzeResult renders the converged result. Text output is the
// node-per-line mapping; JSON carries the full report.
func outputAnalyzeResult(f *OutputFormatter, result *engine.Result, rec *engine.Recorder) error {
	if f.Format == "json" {
		report := AnalyzeReport{
			RunToken: result.RunToken(),
			Passes:   result.Passes(),
		}
		for _, id := range result.NodeIDs() {
			report.Nodes = append(report.Nodes, NodeSets{
				ID:     id,
				Input:  result.At(id),
				Output: result.OutputAt(id),
			})
		}
		if rec != nil {
			report.Trace = rec.Events()
		}
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:   "ok",
			Data:     report,
			RunToken: result.RunToken(),
		})
	}

	if rec != nil {
		for _, ev := range rec.Events() {
			fmt.Fprintf(f.GetErrWriter(), "pass %d node %d in=%v out=%v\n", ev.Seq, ev.Node, ev.Input, ev.Output)
		}
	}
	for _, id := range result.NodeIDs() {
		fmt.Fprintln(f.Writer, formatNodeLine(id, result.At(id)))
	}
	return nil
}

// formatNodeLine renders "id v1 v2 ..." with the values ascending.
func formatNodeLine(id int, values []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(id))
	for _, v := range values {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
