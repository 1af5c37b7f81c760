package perturb

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Spec names a generator together with its configuration mapping, as
// persisted in a YAML file. A Spec written from a live generator and
// read back builds an equivalent generator.
type Spec struct {
	Name   string         `yaml:"name"`
	Config map[string]any `yaml:"config"`
}

// SpecOf captures a generator as a Spec.
func SpecOf(name string, p Perturber) Spec {
	return Spec{Name: name, Config: p.Config()}
}

// Build constructs the generator the spec describes.
func (s Spec) Build() (Perturber, error) {
	return New(s.Name, s.Config)
}

// WriteSpec writes a spec to a YAML file.
func WriteSpec(spec Spec, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadSpec reads a spec from a YAML file.
func ReadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, err
	}

	return spec, nil
}
