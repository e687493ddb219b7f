package graph

import (
	"errors"
	"fmt"
)

// DuplicateNodeIDError reports two node declarations sharing an ID.
// Fatal at construction; no partial graph is produced.
type DuplicateNodeIDError struct {
	ID int
}

// Error implements the error interface.
func (e *DuplicateNodeIDError) Error() string {
	return fmt.Sprintf("duplicate node id %d", e.ID)
}

// UnknownNodeError reports an edge endpoint or the entry naming a node
// that was never declared. Ref identifies which reference was bad
// ("edge source", "edge target", or "entry").
type UnknownNodeError struct {
	Ref string
	ID  int
}

// Error implements the error interface.
func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("%s references unknown node %d", e.Ref, e.ID)
}

// IsDuplicateNodeIDError reports whether err is a DuplicateNodeIDError.
// Uses errors.As to handle wrapped errors.
func IsDuplicateNodeIDError(err error) bool {
	var de *DuplicateNodeIDError
	return errors.As(err, &de)
}

// IsUnknownNodeError reports whether err is an UnknownNodeError.
// Uses errors.As to handle wrapped errors.
func IsUnknownNodeError(err error) bool {
	var ue *UnknownNodeError
	return errors.As(err, &ue)
}
