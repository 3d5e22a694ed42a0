package umat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one harness run: which kernel to bind and what to feed it.
type Scenario struct {
	Artifact         string    `yaml:"artifact"`
	Symbol           string    `yaml:"symbol"`
	Material         string    `yaml:"material"`
	Properties       []float64 `yaml:"properties"`
	ImposedStrain    float64   `yaml:"imposed_strain"`
	StrainIncrement  []float64 `yaml:"strain_increment,omitempty"`
	StateVariables   []float64 `yaml:"state_variables,omitempty"`
	StepTime         float64   `yaml:"step_time"`
	TotalTime        float64   `yaml:"total_time"`
	TimeIncrement    float64   `yaml:"time_increment"`
	Temperature      float64   `yaml:"temperature"`
	TemperatureDelta float64   `yaml:"temperature_increment"`
	Element          int       `yaml:"element"`
	IntegrationPoint int       `yaml:"integration_point"`
	Step             int       `yaml:"step"`
	Increment        int       `yaml:"increment"`
	ElementLength    float64   `yaml:"element_length"`
	Debug            bool      `yaml:"debug"`
}

// DefaultScenario is a linear elastic demonstration: E=100, nu=0.2 and a strain of 0.001 in the first component.
func DefaultScenario() Scenario {
	return Scenario{
		Artifact:         "libumat.so",
		Symbol:           "umat_",
		Material:         "ELASTIC",
		Properties:       []float64{100.0, 0.2},
		ImposedStrain:    0.001,
		Element:          1,
		IntegrationPoint: 1,
		Step:             1,
		Increment:        1,
	}
}

// LoadScenario read a YAML scenario over [DefaultScenario]. A missing file yields the defaults.
// UMAT_ARTIFACT and UMAT_SYMBOL override the file.
func LoadScenario(path string) (*Scenario, error) {
	s := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read scenario: %w", err)
		}
	} else if err = yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	s.applyEnvOverrides()
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyEnvOverrides() {
	if v := os.Getenv("UMAT_ARTIFACT"); v != "" {
		s.Artifact = v
	}
	if v := os.Getenv("UMAT_SYMBOL"); v != "" {
		s.Symbol = v
	}
}

// Validate check the fields the harness itself needs.
func (s *Scenario) Validate() error {
	switch {
	case s.Artifact == "":
		return errors.New("scenario: artifact is required")
	case s.Symbol == "":
		return errors.New("scenario: symbol is required")
	case len(s.StrainIncrement) > NTENS:
		return fmt.Errorf("scenario: strain_increment has %d components, at most %d", len(s.StrainIncrement), NTENS)
	}
	return nil
}

// Save write the scenario as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	return nil
}

// Prepare build the argument Block for this scenario.
func (s Scenario) Prepare() *Block {
	opts := []Option{
		WithMaterial(s.Material),
		WithTime(s.StepTime, s.TotalTime, s.TimeIncrement),
		WithTemperature(s.Temperature, s.TemperatureDelta),
		WithCharacteristicLength(s.ElementLength),
		WithStrainIncrement(s.StrainIncrement...),
		WithStateVariables(s.StateVariables),
	}
	if s.Element > 0 || s.IntegrationPoint > 0 {
		opts = append(opts, WithElement(max(s.Element, 1), max(s.IntegrationPoint, 1)))
	}
	if s.Step > 0 || s.Increment > 0 {
		opts = append(opts, WithIncrement(max(s.Step, 1), max(s.Increment, 1)))
	}
	return Prepare(s.Properties, s.ImposedStrain, opts...)
}
