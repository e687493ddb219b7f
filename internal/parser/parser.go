// Package parser reads the line-oriented graph description format:
//
//	nodeCount edgeCount
//	id unload load        (nodeCount lines)
//	from to               (edgeCount lines)
//	entryId
//
// It produces a graph.Definition; structural validation (duplicate IDs,
// unknown references) happens in graph.Build, not here.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowset/flowset/internal/graph"
)

// ParseError reports a malformed input line. Line is 1-based and 0 when
// the input ended before the expected line count.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// IsParseError reports whether err is a ParseError.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// lineReader hands out non-blank lines and tracks position for errors.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the next non-blank line. A ParseError with Line 0 means
// the input was truncated.
func (r *lineReader) next(what string) (string, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text != "" {
			return text, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", &ParseError{Message: fmt.Sprintf("unexpected end of input: missing %s", what)}
}

// ints parses a line into exactly want integers.
func (r *lineReader) ints(what string, want int) ([]int, error) {
	text, err := r.next(what)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	if len(fields) != want {
		return nil, &ParseError{
			Line:    r.line,
			Message: fmt.Sprintf("%s: expected %d fields, got %d", what, want, len(fields)),
		}
	}
	out := make([]int, want)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{
				Line:    r.line,
				Message: fmt.Sprintf("%s: invalid integer %q", what, f),
			}
		}
		out[i] = v
	}
	return out, nil
}

// Parse reads a complete graph description from r.
func Parse(r io.Reader) (*graph.Definition, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}

	header, err := lr.ints("header", 2)
	if err != nil {
		return nil, err
	}
	nodeCount, edgeCount := header[0], header[1]
	if nodeCount < 0 || edgeCount < 0 {
		return nil, &ParseError{Line: lr.line, Message: "header: counts must be non-negative"}
	}

	def := &graph.Definition{
		Nodes: make([]graph.Node, 0, nodeCount),
		Edges: make([]graph.Edge, 0, edgeCount),
	}

	for i := 0; i < nodeCount; i++ {
		fields, err := lr.ints("node declaration", 3)
		if err != nil {
			return nil, err
		}
		def.Nodes = append(def.Nodes, graph.Node{ID: fields[0], Unload: fields[1], Load: fields[2]})
	}

	for i := 0; i < edgeCount; i++ {
		fields, err := lr.ints("edge declaration", 2)
		if err != nil {
			return nil, err
		}
		def.Edges = append(def.Edges, graph.Edge{From: fields[0], To: fields[1]})
	}

	entry, err := lr.ints("entry id", 1)
	if err != nil {
		return nil, err
	}
	def.Entry = entry[0]

	if extra, err := lr.next("nothing"); err == nil {
		return nil, &ParseError{
			Line:    lr.line,
			Message: fmt.Sprintf("unexpected trailing input %q", extra),
		}
	} else if !IsParseError(err) {
		return nil, err
	}

	return def, nil
}

// ParseString is a convenience wrapper around Parse for in-memory input.
func ParseString(s string) (*graph.Definition, error) {
	return Parse(strings.NewReader(s))
}
