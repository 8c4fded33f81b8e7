// Package validations checks the coarse shape of raw bridge parameters and
// builds the typed request structs the engines operate on. Validation
// failures are reported before either engine runs and before any rule set is
// mutated.
package validations

import (
	"encoding/json"
	"fmt"
	"strings"

	"kucukaslan/bridge/domain"
)

// ParseInitRequest validates the parameters of the initialize operation.
func ParseInitRequest(params map[string]any) (*domain.InitRequest, error) {
	site, err := intParam(params, "site")
	if err != nil {
		return nil, err
	}
	if site <= 0 {
		return nil, &domain.ValidationError{Parameter: "site", Detail: "must be a positive integer"}
	}

	collectDomain, err := stringParam(params, "collectDomain")
	if err != nil {
		return nil, err
	}

	visitorIDType, err := stringParam(params, "visitorIDType")
	if err != nil {
		return nil, err
	}
	vt, err := domain.ParseVisitorIDType(visitorIDType)
	if err != nil {
		return nil, &domain.ValidationError{Parameter: "visitorIDType", Detail: `must be "UUID" or "ADID"`}
	}

	return &domain.InitRequest{
		Site:          site,
		CollectDomain: collectDomain,
		VisitorIDType: vt,
	}, nil
}

// ParseSendRequest validates the events parameter of a send call. Property
// values are mapped onto the accepted native shapes here at the coercion
// boundary; a value outside the enumeration or an unknown force type fails
// as a coercion error.
func ParseSendRequest(params map[string]any) (*domain.SendRequest, error) {
	rawEvents, ok := params["events"].([]any)
	if !ok {
		return nil, &domain.ValidationError{Parameter: "events", Detail: "must be a list of event objects"}
	}
	if len(rawEvents) == 0 {
		return nil, &domain.ValidationError{Parameter: "events", Detail: "cannot be empty"}
	}

	events := make([]domain.EventInput, 0, len(rawEvents))
	for i, re := range rawEvents {
		obj, ok := re.(map[string]any)
		if !ok {
			return nil, &domain.ValidationError{
				Parameter: "events",
				Detail:    fmt.Sprintf("element %d must be an event object", i),
			}
		}
		name, ok := obj["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &domain.ValidationError{
				Parameter: "events",
				Detail:    fmt.Sprintf("element %d is missing a non-empty name", i),
			}
		}

		input := domain.EventInput{Name: name, Data: make(map[string]domain.PropertyInput)}
		if rawData, present := obj["data"]; present {
			data, ok := rawData.(map[string]any)
			if !ok {
				return nil, &domain.ValidationError{
					Parameter: "events",
					Detail:    fmt.Sprintf("element %d: data must be an object", i),
				}
			}
			for propName, rawProp := range data {
				prop, err := parsePropertyInput(propName, rawProp)
				if err != nil {
					return nil, err
				}
				input.Data[propName] = prop
			}
		}
		events = append(events, input)
	}

	return &domain.SendRequest{Events: events}, nil
}

func parsePropertyInput(name string, rawProp any) (domain.PropertyInput, error) {
	obj, ok := rawProp.(map[string]any)
	if !ok {
		return domain.PropertyInput{}, &domain.ValidationError{
			Parameter: "events",
			Detail:    fmt.Sprintf("property %q must be an object with a value field", name),
		}
	}
	value, present := obj["value"]
	if !present {
		return domain.PropertyInput{}, &domain.ValidationError{
			Parameter: "events",
			Detail:    fmt.Sprintf("property %q is missing a value", name),
		}
	}

	raw, err := domain.RawFromJSON(value)
	if err != nil {
		return domain.PropertyInput{}, &domain.CoercionError{Property: name, Reason: err.Error()}
	}

	force := domain.ForceNone
	if rawForce, present := obj["forceType"]; present {
		forceStr, ok := rawForce.(string)
		if !ok {
			return domain.PropertyInput{}, &domain.ValidationError{
				Parameter: "events",
				Detail:    fmt.Sprintf("property %q: forceType must be a string", name),
			}
		}
		force, err = domain.ParseForceType(forceStr)
		if err != nil {
			return domain.PropertyInput{}, &domain.CoercionError{Property: name, Reason: err.Error()}
		}
	}

	return domain.PropertyInput{Value: raw, Force: force}, nil
}

// ParsePrivacyRequest validates the parameters of a privacy include/exclude
// call. The name-list parameter depends on the rule dimension: "features" for
// storage features, "eventNames" for events, "propertyNames" (plus an
// optional "eventNames" scope) for properties.
func ParsePrivacyRequest(kind domain.RuleKind, include bool, params map[string]any) (*domain.PrivacyRequest, error) {
	var namesParam string
	switch kind {
	case domain.RuleStorageFeatures:
		namesParam = "features"
	case domain.RuleEvents:
		namesParam = "eventNames"
	case domain.RuleProperties:
		namesParam = "propertyNames"
	default:
		return nil, &domain.ValidationError{Parameter: "method", Detail: "unsupported privacy rule kind"}
	}

	names, err := stringListParam(params, namesParam, true)
	if err != nil {
		return nil, err
	}
	modes, err := stringListParam(params, "modes", true)
	if err != nil {
		return nil, err
	}

	req := &domain.PrivacyRequest{
		Kind:    kind,
		Include: include,
		Names:   names,
		Modes:   modes,
	}
	if kind == domain.RuleProperties {
		if _, present := params["eventNames"]; present {
			scope, err := stringListParam(params, "eventNames", false)
			if err != nil {
				return nil, err
			}
			req.EventScope = scope
		}
	}
	return req, nil
}

func intParam(params map[string]any, name string) (int, error) {
	v, present := params[name]
	if !present {
		return 0, &domain.ValidationError{Parameter: name, Detail: "is required"}
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, &domain.ValidationError{Parameter: name, Detail: "must be an integer"}
	}
	i, err := n.Int64()
	if err != nil {
		return 0, &domain.ValidationError{Parameter: name, Detail: "must be an integer"}
	}
	return int(i), nil
}

func stringParam(params map[string]any, name string) (string, error) {
	v, present := params[name]
	if !present {
		return "", &domain.ValidationError{Parameter: name, Detail: "is required"}
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &domain.ValidationError{Parameter: name, Detail: "must be a non-empty string"}
	}
	return s, nil
}

func stringListParam(params map[string]any, name string, required bool) ([]string, error) {
	v, present := params[name]
	if !present {
		if required {
			return nil, &domain.ValidationError{Parameter: name, Detail: "is required"}
		}
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &domain.ValidationError{Parameter: name, Detail: "must be a list of strings"}
	}
	if required && len(list) == 0 {
		return nil, &domain.ValidationError{Parameter: name, Detail: "cannot be empty"}
	}
	out := make([]string, 0, len(list))
	for i, el := range list {
		s, ok := el.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, &domain.ValidationError{
				Parameter: name,
				Detail:    fmt.Sprintf("element %d must be a non-empty string", i),
			}
		}
		out = append(out, s)
	}
	return out, nil
}
