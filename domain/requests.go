package domain

import "fmt"

// DispatchRequest is the raw bridge call: a method name plus a name-keyed
// parameter mapping. Parameters stay untyped until the facade validates them.
type DispatchRequest struct {
	Method     string         `json:"method" example:"send"`
	Parameters map[string]any `json:"parameters" swaggertype:"object"`
}

// VisitorIDType selects how the collector identifies visitors.
type VisitorIDType int

const (
	VisitorIDUUID VisitorIDType = iota + 1
	VisitorIDADID
)

var visitorIDTypeNames = map[string]VisitorIDType{
	"UUID": VisitorIDUUID,
	"ADID": VisitorIDADID,
}

// ParseVisitorIDType resolves a wire visitor id type to its enum value.
func ParseVisitorIDType(name string) (VisitorIDType, error) {
	v, ok := visitorIDTypeNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown visitor id type %q", name)
	}
	return v, nil
}

func (v VisitorIDType) String() string {
	for name, t := range visitorIDTypeNames {
		if t == v {
			return name
		}
	}
	return "UUID"
}

// InitRequest carries the validated parameters of the initialize operation.
type InitRequest struct {
	Site          int
	CollectDomain string
	VisitorIDType VisitorIDType
}

// PropertyInput is one untyped property awaiting coercion.
type PropertyInput struct {
	Value Raw
	Force ForceType
}

// EventInput is one untyped event of a send call.
type EventInput struct {
	Name string
	Data map[string]PropertyInput
}

// SendRequest carries the validated (but not yet coerced) events of a send
// call.
type SendRequest struct {
	Events []EventInput
}

// PrivacyRequest carries the validated parameters of a privacy
// include/exclude call. EventScope is meaningful for RuleProperties only; an
// empty scope targets the wildcard event key.
type PrivacyRequest struct {
	Kind       RuleKind
	Include    bool
	Names      []string
	Modes      []string
	EventScope []string
}
