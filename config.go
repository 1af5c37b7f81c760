package perturb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WindowConfig holds the construction parameters for SlidingWindow.
// Each pair is ordered (height, width).
type WindowConfig struct {
	WindowSize []int `json:"window_size"`
	Stride     []int `json:"stride"`
}

// DefaultWindowConfig returns the default SlidingWindow parameters:
// a 50×50 window at a 20×20 stride.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		WindowSize: []int{50, 50},
		Stride:     []int{20, 20},
	}
}

// withDefaults fills unset fields from DefaultWindowConfig.
func (c WindowConfig) withDefaults() WindowConfig {
	def := DefaultWindowConfig()
	if c.WindowSize == nil {
		c.WindowSize = def.WindowSize
	}
	if c.Stride == nil {
		c.Stride = def.Stride
	}
	return c
}

// Validate reports the first invalid parameter, if any.
func (c WindowConfig) Validate() error {
	if err := intPair("window_size", c.WindowSize); err != nil {
		return err
	}
	return intPair("stride", c.Stride)
}

// RadialConfig holds the construction parameters for SlidingRadial.
// Radius and Sigma are ordered (y, x); Stride is (height, width).
// A nil Sigma disables blurring and serializes as null.
type RadialConfig struct {
	Radius []float64 `json:"radius"`
	Stride []int     `json:"stride"`
	Sigma  []float64 `json:"sigma"`
}

// DefaultRadialConfig returns the default SlidingRadial parameters:
// a 50×50 radius at a 20×20 stride, without blurring.
func DefaultRadialConfig() RadialConfig {
	return RadialConfig{
		Radius: []float64{50, 50},
		Stride: []int{20, 20},
	}
}

// withDefaults fills unset fields from DefaultRadialConfig. A nil
// Sigma stays nil: absence is the default.
func (c RadialConfig) withDefaults() RadialConfig {
	def := DefaultRadialConfig()
	if c.Radius == nil {
		c.Radius = def.Radius
	}
	if c.Stride == nil {
		c.Stride = def.Stride
	}
	return c
}

// Validate reports the first invalid parameter, if any.
func (c RadialConfig) Validate() error {
	if err := floatPair("radius", c.Radius); err != nil {
		return err
	}
	if err := intPair("stride", c.Stride); err != nil {
		return err
	}
	if c.Sigma != nil {
		return floatPair("sigma", c.Sigma)
	}
	return nil
}

func intPair(name string, v []int) error {
	if len(v) != 2 {
		return fmt.Errorf("%s must have exactly 2 elements, got %d", name, len(v))
	}
	for _, e := range v {
		if e <= 0 {
			return fmt.Errorf("%s values must be positive, got %v", name, v)
		}
	}
	return nil
}

func floatPair(name string, v []float64) error {
	if len(v) != 2 {
		return fmt.Errorf("%s must have exactly 2 elements, got %d", name, len(v))
	}
	for _, e := range v {
		if e <= 0 {
			return fmt.Errorf("%s values must be positive, got %v", name, v)
		}
	}
	return nil
}

// configMap converts a typed config to its canonical mapping shape by
// passing it through JSON. Defaults, live instances and parsed
// configuration all produce identical mappings this way, so they
// compare equal regardless of origin.
func configMap(cfg any) map[string]any {
	data, err := json.Marshal(cfg)
	if err != nil {
		panic(fmt.Sprintf("perturb: marshal config: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("perturb: unmarshal config: %v", err))
	}
	return m
}

// decodeConfig decodes a generic mapping into a typed config,
// rejecting unknown keys. Fields absent from the mapping keep the
// values already present in dst.
func decodeConfig(m map[string]any, dst any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}
	return nil
}
