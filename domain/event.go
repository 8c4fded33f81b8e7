package domain

import "encoding/json"

// Property is a named typed value belonging to one event.
type Property struct {
	Name  string
	Value Value
}

// Event is a transient, fully typed analytics event. Properties are keyed by
// name; when a caller supplies duplicate names the last write wins.
type Event struct {
	ID         string
	Name       string
	Properties map[string]Value
}

// SetProperty stores a property on the event, replacing any previous value
// under the same name.
func (e *Event) SetProperty(p Property) {
	if e.Properties == nil {
		e.Properties = make(map[string]Value)
	}
	e.Properties[p.Name] = p.Value
}

// PropertiesJSON serializes the property set as a JSON object for storage in
// the collector. Map keys are emitted in sorted order by encoding/json, so
// the representation is stable.
func (e *Event) PropertiesJSON() (string, error) {
	if len(e.Properties) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(e.Properties)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
