package bldc

// Config holds the motor constants and sweep settings.
// Units:
//   - SpeedConstant: rpm per volt (KV)
//   - PhaseResistance: ohm (line-line equivalent for the DC model)
//   - BusVoltage: volts
//   - NoLoadCurrent: amps (kept for compatibility, not used by any formula)
//   - CoreLossAtBase: watts of core+mechanical loss at BaseSpeedRPM
//   - BaseSpeedRPM: rpm
//   - ThermalResistance: °C per watt, case to ambient
//   - AmbientTemp: °C
type Config struct {
	SpeedConstant     float64 `yaml:"speed_constant" json:"speed_constant"`
	PhaseResistance   float64 `yaml:"phase_resistance" json:"phase_resistance"`
	BusVoltage        float64 `yaml:"bus_voltage" json:"bus_voltage"`
	NoLoadCurrent     float64 `yaml:"no_load_current" json:"no_load_current"`
	CoreLossAtBase    float64 `yaml:"core_loss_at_base" json:"core_loss_at_base"`
	BaseSpeedRPM      float64 `yaml:"base_speed_rpm" json:"base_speed_rpm"`
	Samples           int     `yaml:"samples" json:"samples"`
	ThermalResistance float64 `yaml:"thermal_resistance" json:"thermal_resistance"`
	AmbientTemp       float64 `yaml:"ambient_temp" json:"ambient_temp"`
}

// DefaultConfig returns the reference motor: a small drone/EV-class
// outrunner on a 4S pack, with base speed at its no-load speed.
func DefaultConfig() *Config {
	return _defaultConfig()
}

func _defaultConfig() *Config {
	return &Config{
		SpeedConstant:     920.0,        // rpm/V
		PhaseResistance:   0.2,          // ohm
		BusVoltage:        14.8,         // V
		NoLoadCurrent:     0.8,          // A
		CoreLossAtBase:    3.0,          // W
		BaseSpeedRPM:      920.0 * 14.8, // rpm, KV x V
		Samples:           200,
		ThermalResistance: 0.15, // °C/W
		AmbientTemp:       27.0, // °C
	}
}

// Point is the operating state at one speed of the sweep.
type Point struct {
	SpeedRPM   float64 `json:"speed_rpm"`
	Omega      float64 `json:"omega"`      // rad/s
	BackEMF    float64 `json:"back_emf"`   // V
	Current    float64 `json:"current"`    // A
	Torque     float64 `json:"torque"`     // Nm
	InputPower float64 `json:"p_in"`       // W
	MechPower  float64 `json:"p_mech"`     // W
	CopperLoss float64 `json:"p_cu"`       // W
	CoreLoss   float64 `json:"p_core"`     // W
	TotalLoss  float64 `json:"p_loss"`     // W
	Efficiency float64 `json:"efficiency"` // 0..1
}

// Result is the full sweep plus the thermal summary.
type Result struct {
	BackEMFConstant float64 `json:"ke"` // V/(rad/s)
	TorqueConstant  float64 `json:"kt"` // Nm/A
	NoLoadRPM       float64 `json:"speed_rpm_no_load"`
	NoLoadOmega     float64 `json:"omega_no_load"`
	MaxLoss         float64 `json:"p_loss_max"`  // W
	DeltaT          float64 `json:"delta_t_max"` // °C
	CaseTemp        float64 `json:"t_case_max"`  // °C

	Points []Point `json:"points"`
}

// Column extracts one quantity from every point, in sweep order.
func (r *Result) Column(get func(Point) float64) []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = get(p)
	}
	return out
}

func (r *Result) SpeedRPM() []float64   { return r.Column(func(p Point) float64 { return p.SpeedRPM }) }
func (r *Result) Torque() []float64     { return r.Column(func(p Point) float64 { return p.Torque }) }
func (r *Result) Current() []float64    { return r.Column(func(p Point) float64 { return p.Current }) }
func (r *Result) CopperLoss() []float64 { return r.Column(func(p Point) float64 { return p.CopperLoss }) }
func (r *Result) CoreLoss() []float64   { return r.Column(func(p Point) float64 { return p.CoreLoss }) }
func (r *Result) TotalLoss() []float64  { return r.Column(func(p Point) float64 { return p.TotalLoss }) }
func (r *Result) Efficiency() []float64 { return r.Column(func(p Point) float64 { return p.Efficiency }) }

// PeakEfficiency returns the first point with the highest efficiency.
// The zero value is returned for an empty result.
func (r *Result) PeakEfficiency() Point {
	var best Point
	for i, p := range r.Points {
		if i == 0 || p.Efficiency > best.Efficiency {
			best = p
		}
	}
	return best
}
