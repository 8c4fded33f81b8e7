package domain

import "fmt"

// ValidationError reports a missing or malformed required parameter. It is
// raised before either engine runs and before any rule set is mutated.
type ValidationError struct {
	Parameter string
	Detail    string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid parameter %q", e.Parameter)
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Detail)
}

// CoercionError reports a property value that cannot be reconciled with its
// inferred or forced type. It aborts the whole send.
type CoercionError struct {
	Property string
	Reason   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce property %q: %s", e.Property, e.Reason)
}

// RuleErrorKind classifies privacy rule failures.
type RuleErrorKind int

const (
	RuleErrorUnknownMode RuleErrorKind = iota + 1
	RuleErrorUnknownFeature
)

// RuleError reports an unrecognized enumeration literal in a privacy call.
type RuleError struct {
	Kind RuleErrorKind
	Name string
}

func (e *RuleError) Error() string {
	switch e.Kind {
	case RuleErrorUnknownMode:
		return fmt.Sprintf("unknown privacy mode %q", e.Name)
	case RuleErrorUnknownFeature:
		return fmt.Sprintf("unknown storage feature %q", e.Name)
	}
	return fmt.Sprintf("privacy rule error for %q", e.Name)
}

// SinkError wraps a failure reported by the collector sink itself. The cause
// is passed through to the caller unchanged.
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("collector %s failed: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
