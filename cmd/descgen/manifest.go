package main

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"dedrv-go/descriptor"
	"dedrv-go/x/mathx"
)

// Manifest describes the devices one package registers.
type Manifest struct {
	Package string       `yaml:"package"`
	Devices []DeviceSpec `yaml:"devices"`
}

// DeviceSpec names one device and the hook functions the target package
// must define for it.
type DeviceSpec struct {
	ID       string `yaml:"id"`
	Priority int64  `yaml:"priority"`
	Init     string `yaml:"init"`
	Cleanup  string `yaml:"cleanup"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate rejects manifests the generated file could not compile from.
func (m *Manifest) Validate() error {
	if !isIdent(m.Package) {
		return fmt.Errorf("package %q is not a valid identifier", m.Package)
	}
	if len(m.Devices) == 0 {
		return fmt.Errorf("manifest declares no devices")
	}
	seen := make(map[string]bool, len(m.Devices))
	for i, d := range m.Devices {
		if d.ID == "" || len(d.ID) > descriptor.MaxIDLen {
			return fmt.Errorf("device %d: id %q must be 1..%d bytes", i, d.ID, descriptor.MaxIDLen)
		}
		if seen[d.ID] {
			return fmt.Errorf("device %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = true
		if !mathx.Between(d.Priority, math.MinInt32, math.MaxInt32) {
			return fmt.Errorf("device %q: priority %d out of int32 range", d.ID, d.Priority)
		}
		if !isIdent(d.Init) {
			return fmt.Errorf("device %q: init hook %q is not a valid identifier", d.ID, d.Init)
		}
		if !isIdent(d.Cleanup) {
			return fmt.Errorf("device %q: cleanup hook %q is not a valid identifier", d.ID, d.Cleanup)
		}
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
