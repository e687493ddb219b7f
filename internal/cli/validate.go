package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationReport is the JSON payload of a validate run.
type ValidationReport struct {
	Valid bool   `json:"valid"`
	Nodes int    `json:"nodes,omitempty"`
	Edges int    `json:"edges,omitempty"`
	Entry int    `json:"entry,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <graph-file>",
		Short: "Validate a graph definition without running the analysis",
		Long: `Validate loads a graph definition and checks its structure: the line
format or CUE shape, duplicate node identifiers, and edge or entry
references to nodes that do not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path string) error {
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
		return outputValidationFailure(formatter, classifyError(err), err)
	}
	g, err := def.Build()
	if err != nil {
		return outputValidationFailure(formatter, classifyError(err), err)
	}

	if formatter.Format == "json" {
		_ = formatter.Success(ValidationReport{
			Valid: true,
			Nodes: g.Len(),
			Edges: len(def.Edges),
			Entry: def.Entry,
		})
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ graph valid (%d nodes, %d edges, entry %d)\n", g.Len(), len(def.Edges), def.Entry)
	return nil
}

// outputValidationFailure renders the failure and picks the exit code:
// IO and loader failures are command errors, structural defects in an
// otherwise readable definition are validation failures.
func outputValidationFailure(f *OutputFormatter, code string, err error) error {
	if f.Format == "json" {
		_ = f.Error(code, err.Error(), nil)
	} else {
		fmt.Fprintf(f.Writer, "✗ graph invalid\n")
		fmt.Fprintf(f.Writer, "  [%s] %s\n", code, err.Error())
	}

	switch code {
	case ErrCodeRead, ErrCodeNotFound, ErrCodeCUELoad:
		return WrapExitError(ExitCommandError, "cannot load graph", err)
	default:
		return WrapExitError(ExitFailure, "validation failed", err)
	}
}
