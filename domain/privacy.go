package domain

import "fmt"

// Mode is a privacy mode, a named policy bucket owning independent allow and
// forbid rule sets. Modes are process-wide singletons created at startup.
type Mode int

const (
	ModeOptIn Mode = iota + 1
	ModeOptOut
	ModeExempt
	ModeCustom
	ModeNoConsent
	ModeNoStorage
)

var modeNames = map[string]Mode{
	"opt-in":     ModeOptIn,
	"opt-out":    ModeOptOut,
	"exempt":     ModeExempt,
	"custom":     ModeCustom,
	"no-consent": ModeNoConsent,
	"no-storage": ModeNoStorage,
}

// AllModes lists every privacy mode, in declaration order.
var AllModes = []Mode{ModeOptIn, ModeOptOut, ModeExempt, ModeCustom, ModeNoConsent, ModeNoStorage}

// ParseMode resolves a wire mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	m, ok := modeNames[name]
	if !ok {
		return 0, &RuleError{Kind: RuleErrorUnknownMode, Name: name}
	}
	return m, nil
}

func (m Mode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// StorageFeature identifies a storage area governed by privacy rules. Each
// feature maps to the storage-key string understood by the collector.
type StorageFeature int

const (
	FeatureVisitor StorageFeature = iota + 1
	FeatureCrash
	FeatureLifecycle
	FeaturePrivacy
	FeatureUser
)

var featureNames = map[string]StorageFeature{
	"VISITOR":   FeatureVisitor,
	"CRASH":     FeatureCrash,
	"LIFECYCLE": FeatureLifecycle,
	"PRIVACY":   FeaturePrivacy,
	"USER":      FeatureUser,
}

var featureStorageKeys = map[StorageFeature]string{
	FeatureVisitor:   "storage_visitor",
	FeatureCrash:     "storage_crash",
	FeatureLifecycle: "storage_lifecycle",
	FeaturePrivacy:   "storage_privacy",
	FeatureUser:      "storage_user",
}

// AllStorageFeatures lists every storage feature, in declaration order.
var AllStorageFeatures = []StorageFeature{
	FeatureVisitor, FeatureCrash, FeatureLifecycle, FeaturePrivacy, FeatureUser,
}

// ParseStorageFeature resolves a wire feature identifier to its StorageFeature.
func ParseStorageFeature(name string) (StorageFeature, error) {
	f, ok := featureNames[name]
	if !ok {
		return 0, &RuleError{Kind: RuleErrorUnknownFeature, Name: name}
	}
	return f, nil
}

func (f StorageFeature) String() string {
	for name, feature := range featureNames {
		if feature == f {
			return name
		}
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// StorageKey returns the storage-key string the collector understands.
func (f StorageFeature) StorageKey() string {
	return featureStorageKeys[f]
}

// WildcardEvent is the property-rule event key that scopes a rule to all
// events rather than one named event.
const WildcardEvent = "*"

// RuleKind selects the rule dimension a privacy mutation targets.
type RuleKind int

const (
	RuleStorageFeatures RuleKind = iota + 1
	RuleEvents
	RuleProperties
)

func (k RuleKind) String() string {
	switch k {
	case RuleStorageFeatures:
		return "storage-features"
	case RuleEvents:
		return "events"
	case RuleProperties:
		return "properties"
	}
	return "invalid"
}

// RuleChange records one applied privacy mutation, as handed to the collector.
type RuleChange struct {
	Kind       RuleKind `json:"kind"`
	Include    bool     `json:"include"`
	Names      []string `json:"names"`
	Modes      []string `json:"modes"`
	EventScope []string `json:"event_scope,omitempty"`
}

// MarshalJSON emits the kind as its wire name.
func (k RuleKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}
