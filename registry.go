package perturb

import "fmt"

// Generator names accepted by New and DefaultConfig.
const (
	NameSlidingWindow = "sliding_window"
	NameSlidingRadial = "sliding_radial"
)

// New builds a mask generator by name from a generic configuration
// mapping, as produced by parsing JSON or YAML. Unknown names and
// unknown configuration keys are rejected; missing keys take the
// generator's defaults. New is the left inverse of Perturber.Config:
// New(name, p.Config()) reproduces p.
func New(name string, cfg map[string]any) (Perturber, error) {
	switch name {
	case NameSlidingWindow:
		var c WindowConfig
		if err := decodeConfig(cfg, &c); err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		return NewSlidingWindow(c)
	case NameSlidingRadial:
		var c RadialConfig
		if err := decodeConfig(cfg, &c); err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		return NewSlidingRadial(c)
	default:
		return nil, fmt.Errorf("unknown generator name: %s", name)
	}
}

// DefaultConfig returns the default construction parameters of the
// named generator in the same canonical mapping shape produced by
// Perturber.Config.
func DefaultConfig(name string) (map[string]any, error) {
	switch name {
	case NameSlidingWindow:
		return configMap(DefaultWindowConfig()), nil
	case NameSlidingRadial:
		return configMap(DefaultRadialConfig()), nil
	default:
		return nil, fmt.Errorf("unknown generator name: %s", name)
	}
}

// Names lists the generator names known to New.
func Names() []string {
	return []string{NameSlidingWindow, NameSlidingRadial}
}
