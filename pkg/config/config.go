// Package config loads motor configurations from YAML files.
//
// A file only needs the fields it changes; everything else keeps the
// reference values from bldc.DefaultConfig. Unknown keys are rejected so a
// typo never silently falls back to a default.
//
//	speed_constant: 920      # rpm/V
//	phase_resistance: 0.2    # ohm
//	bus_voltage: 14.8        # V
//	core_loss_at_base: 3.0   # W
//	# base_speed_rpm omitted: speed_constant * bus_voltage, see ResolveBaseSpeed
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/bldc/pkg/bldc"
)

// Load reads and decodes the YAML file at path.
func Load(path string) (*bldc.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads one YAML document from r over the default configuration.
// The result is not validated.
//
// BaseSpeedRPM stays 0 when the document omits it, so later overrides of
// KV or bus voltage still move it; call ResolveBaseSpeed once all
// overrides are applied.
func Decode(r io.Reader) (*bldc.Config, error) {
	cfg := bldc.DefaultConfig()
	// base speed follows KV and bus voltage unless the file pins it
	cfg.BaseSpeedRPM = 0

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *bldc.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// ResolveBaseSpeed sets a zero BaseSpeedRPM to the no-load speed at the
// configured bus voltage (SpeedConstant × BusVoltage). Any other value,
// including a negative one, is left for validation to judge.
func ResolveBaseSpeed(cfg *bldc.Config) {
	if cfg.BaseSpeedRPM == 0 {
		cfg.BaseSpeedRPM = cfg.SpeedConstant * cfg.BusVoltage
	}
}
