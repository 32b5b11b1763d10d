package db

import "fmt"

// --------------------------------------------------------------------------
// Dump Policy
// --------------------------------------------------------------------------

// DumpPolicy controls when in-memory changes are persisted to the store's
// file.
type DumpPolicy int

const (
	// AutoDump persists synchronously after every mutating operation,
	// before the operation returns to the caller.
	AutoDump DumpPolicy = iota
	// DumpUponRequest persists only when the caller explicitly invokes a
	// dump. Nothing is written on mutation and nothing is written when the
	// store handle goes out of scope.
	DumpUponRequest
	// NoDump never writes to the file. Used for read-only loaded snapshots
	// and ephemeral in-memory stores. Requesting a dump under this policy
	// is a documented no-op, not an error.
	NoDump
)

func (p DumpPolicy) String() string {
	switch p {
	case AutoDump:
		return "auto"
	case DumpUponRequest:
		return "request"
	case NoDump:
		return "none"
	default:
		return "unknown"
	}
}

// ParseDumpPolicy converts a configuration string into a DumpPolicy.
func ParseDumpPolicy(s string) (DumpPolicy, error) {
	switch s {
	case "auto":
		return AutoDump, nil
	case "request":
		return DumpUponRequest, nil
	case "none":
		return NoDump, nil
	default:
		return 0, fmt.Errorf("invalid dump policy %q (must be one of auto, request, none)", s)
	}
}
