// Package opresult defines the value-or-status return used by every
// shard-local set operation and by the cross-shard combiners that fan
// them back in.
package opresult

// Status is a result kind, not an exception type. Shard-local operations
// and combiners branch on it explicitly rather than propagating a Go
// error, matching the taxonomy of the wire-level command family.
type Status int

const (
	// OK indicates the operation completed; Count/Members/Bool carry the payload.
	OK Status = iota
	// KeyNotFound is benign for reads and combiners; writes usually turn it into a
	// zero-effect success further up the call stack.
	KeyNotFound
	// WrongType surfaces to the client as WRONGTYPE and aborts multi-hop commands.
	WrongType
	// InvalidInt means a value that was required to parse as an integer did not.
	InvalidInt
	// Skipped is a combiner-internal sentinel: "this shard contributed nothing by
	// design". It must never reach the client.
	Skipped
	// Unexpected is logged at error level; the client sees a null/empty reply.
	Unexpected
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case KeyNotFound:
		return "KEY_NOTFOUND"
	case WrongType:
		return "WRONG_TYPE"
	case InvalidInt:
		return "INVALID_INT"
	case Skipped:
		return "SKIPPED"
	case Unexpected:
		return "UNEXPECTED"
	default:
		return "UNKNOWN"
	}
}

// Result is the OpResult glossary entry: a tagged union of everything a
// shard-local operation or combiner might need to hand back to its caller.
type Result struct {
	Status  Status
	Count   int         // members added/removed, or cardinality
	Bool    bool        // membership tests, SMOVE's 0/1
	Members []string    // ordered payload for pop/union/diff/inter/members
	Extra   interface{} // escape hatch for hop-specific payloads (e.g. mover find outcomes)
}
