package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/flowset/flowset/internal/compiler"
	"github.com/flowset/flowset/internal/engine"
	"github.com/flowset/flowset/internal/graph"
	"github.com/flowset/flowset/internal/parser"
)

// Error codes for CLI output. E0xx are loader/IO errors, E1xx are
// graph and analysis errors.
const (
	ErrCodeGeneric  = "E001" // unclassified error
	ErrCodeRead     = "E002" // file read failed
	ErrCodeNotFound = "E003" // path does not exist
	ErrCodeCUELoad  = "E004" // CUE package load failed
	ErrCodeCUEBuild = "E005" // CUE build/compile failed

	ErrCodeMalformedInput = "E101" // text input violates the line format
	ErrCodeDuplicateNode  = "E102" // two nodes share an identifier
	ErrCodeUnknownNode    = "E103" // edge or entry names a missing node
	ErrCodePassBudget     = "E110" // fixpoint exceeded its pass budget
)

// LoadError wraps loader failures with a stable error code.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadGraph reads a graph definition from path. "-" reads the text
// format from stdin; files ending in .cue and directories are loaded
// as CUE; everything else is parsed as the line-oriented text format.
func LoadGraph(path string, stdin io.Reader) (*graph.Definition, error) {
	if path == "-" {
		def, err := parser.Parse(stdin)
		if err != nil {
			return nil, err
		}
		return def, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("cannot stat %s", path), Err: err}
	}

	if info.IsDir() {
		return loadCUEDir(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return loadCUEFile(path)
	}
	return loadTextFile(path)
}

// loadTextFile parses a single plain-text graph file.
func loadTextFile(path string) (*graph.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("cannot open %s", path), Err: err}
	}
	defer f.Close()

	return parser.Parse(f)
}

// loadCUEFile compiles a single .cue file into a graph definition.
func loadCUEFile(path string) (*graph.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("cannot read %s", path), Err: err}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if v.Err() != nil {
		return nil, &LoadError{Code: ErrCodeCUEBuild, Message: fmt.Sprintf("cannot compile %s", path), Err: v.Err()}
	}
	return compiler.CompileGraph(v)
}

// loadCUEDir loads a CUE package from a directory and compiles the
// unified value into a graph definition.
func loadCUEDir(dir string) (*graph.Definition, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, &LoadError{Code: ErrCodeCUELoad, Message: fmt.Sprintf("no CUE instances in %s", dir)}
	}
	inst := insts[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeCUELoad, Message: fmt.Sprintf("cannot load CUE package from %s", dir), Err: inst.Err}
	}

	ctx := cuecontext.New()
	v := ctx.BuildInstance(inst)
	if v.Err() != nil {
		return nil, &LoadError{Code: ErrCodeCUEBuild, Message: fmt.Sprintf("cannot build CUE package from %s", dir), Err: v.Err()}
	}
	return compiler.CompileGraph(v)
}

// classifyError maps an error to its CLI error code.
func classifyError(err error) string {
	var (
		loadErr *LoadError
		cerr    *compiler.CompileError
	)
	switch {
	case parser.IsParseError(err):
		return ErrCodeMalformedInput
	case graph.IsDuplicateNodeIDError(err):
		return ErrCodeDuplicateNode
	case graph.IsUnknownNodeError(err):
		return ErrCodeUnknownNode
	case engine.IsPassBudgetError(err):
		return ErrCodePassBudget
	case errors.As(err, &cerr):
		return ErrCodeCUEBuild
	case errors.As(err, &loadErr):
		return loadErr.Code
	default:
		return ErrCodeGeneric
	}
}
