package config

import (
	"fmt"
	"os"
	"smartroute-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// FleetPolicy configures dispatch priority and map styling per vehicle type.
type FleetPolicy struct {
	Priority     []domain.VehicleType          `yaml:"priority"`
	Colors       map[domain.VehicleType]string `yaml:"colors"`
	DefaultColor string                        `yaml:"default_color"`
	DepotColor   string                        `yaml:"depot_color"`
	Zoom         int                           `yaml:"zoom"`
}

func DefaultFleetPolicy() FleetPolicy {
	return FleetPolicy{
		Priority: append([]domain.VehicleType(nil), domain.DefaultPriority...),
		Colors: map[domain.VehicleType]string{
			domain.ThreeWheeler:  "green",
			domain.FourWheelerEV: "orange",
			domain.FourWheeler:   "blue",
		},
		DefaultColor: "blue",
		DepotColor:   "red",
		Zoom:         12,
	}
}

// LoadFleetPolicy reads a YAML policy file. Fields left out keep their defaults;
// an empty path returns the defaults.
func LoadFleetPolicy(path string) (FleetPolicy, error) {
	policy := DefaultFleetPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FleetPolicy{}, fmt.Errorf("load fleet policy: read %q: %w", path, err)
	}

	var file FleetPolicy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return FleetPolicy{}, fmt.Errorf("load fleet policy: parse %q: %w", path, err)
	}

	if len(file.Priority) > 0 {
		policy.Priority = file.Priority
	}
	for t, c := range file.Colors {
		policy.Colors[t] = c
	}
	if file.DefaultColor != "" {
		policy.DefaultColor = file.DefaultColor
	}
	if file.DepotColor != "" {
		policy.DepotColor = file.DepotColor
	}
	if file.Zoom > 0 {
		policy.Zoom = file.Zoom
	}

	seen := make(map[domain.VehicleType]struct{}, len(policy.Priority))
	for _, t := range policy.Priority {
		if t == "" {
			return FleetPolicy{}, fmt.Errorf("load fleet policy: empty vehicle type in priority")
		}
		if _, ok := seen[t]; ok {
			return FleetPolicy{}, fmt.Errorf("load fleet policy: vehicle type %q listed twice", t)
		}
		seen[t] = struct{}{}
	}

	return policy, nil
}

// ColorFor returns the map colour of a vehicle type.
func (p FleetPolicy) ColorFor(t domain.VehicleType) string {
	if c, ok := p.Colors[t]; ok {
		return c
	}
	return p.DefaultColor
}
