package notification

import "fmt"

const (
	// CustomPresetID is reserved: a selection pointing at it means the user
	// maintains explicit per-type specifications. No registered preset may
	// claim this id.
	CustomPresetID int16 = 0

	// DefaultPresetID is the baseline applied when a user has no selection row.
	DefaultPresetID int16 = 1

	AllActivityPresetID int16 = 2
	IgnoreAllPresetID   int16 = 3
)

// Preset is a named, immutable bundle of (type, channel) enablement rules.
type Preset interface {
	ID() int16
	Name() string
	IsEnabled(typeCode int16, channel Channel) bool
}

type defaultPreset struct{}

func (defaultPreset) ID() int16    { return DefaultPresetID }
func (defaultPreset) Name() string { return "default" }

// The default preset keeps the in-app and push channels on for everything but
// only emails the low-volume types, so a fresh user is not flooded.
func (defaultPreset) IsEnabled(typeCode int16, channel Channel) bool {
	if channel == ChannelEmail {
		return typeCode == TypeNewAnnouncement || typeCode == TypeExerciseAssessed
	}
	return true
}

type allActivityPreset struct{}

func (allActivityPreset) ID() int16    { return AllActivityPresetID }
func (allActivityPreset) Name() string { return "allActivity" }

func (allActivityPreset) IsEnabled(int16, Channel) bool { return true }

type ignoreAllPreset struct{}

func (ignoreAllPreset) ID() int16    { return IgnoreAllPresetID }
func (ignoreAllPreset) Name() string { return "ignoreAll" }

func (ignoreAllPreset) IsEnabled(int16, Channel) bool { return false }

// DefaultPresets returns the presets every deployment registers.
func DefaultPresets() []Preset {
	return []Preset{defaultPreset{}, allActivityPreset{}, ignoreAllPreset{}}
}

// PresetRegistry holds the registered presets for the process lifetime.
type PresetRegistry struct {
	presets map[int16]Preset
}

// NewPresetRegistry registers the given presets. A preset claiming the
// reserved custom id or an already taken id is a startup configuration error.
func NewPresetRegistry(presets ...Preset) (*PresetRegistry, error) {
	r := &PresetRegistry{presets: make(map[int16]Preset, len(presets))}
	for _, p := range presets {
		if p.ID() == CustomPresetID {
			return nil, fmt.Errorf("preset %q uses the reserved custom preset id %d", p.Name(), CustomPresetID)
		}
		if existing, ok := r.presets[p.ID()]; ok {
			return nil, fmt.Errorf("preset id %d claimed by both %q and %q", p.ID(), existing.Name(), p.Name())
		}
		r.presets[p.ID()] = p
	}
	return r, nil
}

// IsEnabled reports whether the given preset allows a type on a channel.
// Unknown preset ids are treated as disabled.
func (r *PresetRegistry) IsEnabled(presetID, typeCode int16, channel Channel) bool {
	p, ok := r.presets[presetID]
	if !ok {
		return false
	}
	return p.IsEnabled(typeCode, channel)
}

// Has reports whether a preset id is registered.
func (r *PresetRegistry) Has(presetID int16) bool {
	_, ok := r.presets[presetID]
	return ok
}

// Presets returns all registered presets.
func (r *PresetRegistry) Presets() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	return out
}
