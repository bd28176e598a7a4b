package bldc

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceConfig() Config {
	return Config{
		SpeedConstant:     920,
		PhaseResistance:   0.2,
		BusVoltage:        14.8,
		NoLoadCurrent:     0.8,
		CoreLossAtBase:    3.0,
		BaseSpeedRPM:      920 * 14.8,
		Samples:           200,
		ThermalResistance: 0.15,
		AmbientTemp:       27,
	}
}

// a spread of motors: tiny gimbal, reference drone motor, high-voltage e-bike hub,
// plus one with base speed well under no-load speed.
func sweepConfigs() []Config {
	ref := referenceConfig()

	gimbal := ref
	gimbal.SpeedConstant, gimbal.PhaseResistance, gimbal.BusVoltage = 90, 12.5, 12
	gimbal.CoreLossAtBase, gimbal.BaseSpeedRPM, gimbal.Samples = 0, 1000, 2

	hub := ref
	hub.SpeedConstant, hub.PhaseResistance, hub.BusVoltage = 8.5, 0.11, 48
	hub.CoreLossAtBase, hub.BaseSpeedRPM, hub.Samples = 25, 400, 513

	lowBase := ref
	lowBase.BaseSpeedRPM = 2000

	return []Config{ref, gimbal, hub, lowBase}
}

func TestEvaluate_ReferenceMotor_WithLogs(t *testing.T) {
	cfg := referenceConfig()
	res, err := Evaluate(cfg)
	require.NoError(t, err)
	require.Len(t, res.Points, 200)

	assert.InDelta(t, 0.0103797, res.BackEMFConstant, 1e-7)
	assert.Equal(t, res.BackEMFConstant, res.TorqueConstant)
	assert.InDelta(t, 13616.0, res.NoLoadRPM, 1e-6)
	assert.InDelta(t, 14.8/res.BackEMFConstant, res.NoLoadOmega, 1e-9)

	stall := res.Points[0]
	assert.InDelta(t, 74.0, stall.Current, 1e-9)
	assert.InDelta(t, 1095.2, stall.TotalLoss, 1e-9)

	assert.InDelta(t, 1095.2, res.MaxLoss, 1e-9)
	assert.InDelta(t, 164.28, res.DeltaT, 1e-9)
	assert.InDelta(t, 191.28, res.CaseTemp, 1e-9)

	t.Logf("# idx   rpm        I(A)     T(Nm)     Pcu(W)    Pcore(W)  eta")
	for i := 0; i < len(res.Points); i += 40 {
		p := res.Points[i]
		t.Logf("%5d %9.1f %9.3f %9.5f %9.3f %9.5f %6.4f",
			i, p.SpeedRPM, p.Current, p.Torque, p.CopperLoss, p.CoreLoss, p.Efficiency)
	}
	t.Logf("ke=%.6f no-load=%.1f rpm max-loss=%.1f W ΔT=%.1f °C T_case=%.1f °C",
		res.BackEMFConstant, res.NoLoadRPM, res.MaxLoss, res.DeltaT, res.CaseTemp)
}

func TestEvaluate_Invariants(t *testing.T) {
	for i, cfg := range sweepConfigs() {
		t.Run(fmt.Sprintf("motor_%d_kv%g", i, cfg.SpeedConstant), func(t *testing.T) {
			res, err := Evaluate(cfg)
			require.NoError(t, err)
			require.Len(t, res.Points, cfg.Samples)

			first, last := res.Points[0], res.Points[len(res.Points)-1]
			assert.Equal(t, 0.0, first.SpeedRPM)
			assert.InDelta(t, res.NoLoadRPM, last.SpeedRPM, 1e-9*res.NoLoadRPM)

			for j, p := range res.Points {
				if j > 0 {
					assert.GreaterOrEqual(t, p.SpeedRPM, res.Points[j-1].SpeedRPM, "speed at %d", j)
				}
				assert.GreaterOrEqual(t, p.Current, 0.0, "current at %d", j)
				assert.GreaterOrEqual(t, p.Torque, 0.0, "torque at %d", j)
				assert.GreaterOrEqual(t, p.CopperLoss, 0.0, "copper loss at %d", j)
				assert.GreaterOrEqual(t, p.CoreLoss, 0.0, "core loss at %d", j)
				assert.GreaterOrEqual(t, p.TotalLoss, 0.0, "total loss at %d", j)
				assert.GreaterOrEqual(t, p.Efficiency, 0.0, "efficiency at %d", j)
				assert.LessOrEqual(t, p.Efficiency, 1.0, "efficiency at %d", j)
				assert.False(t, math.IsNaN(p.Efficiency), "efficiency at %d", j)
			}
		})
	}
}

func TestEvaluate_StallPoint(t *testing.T) {
	for i, cfg := range sweepConfigs() {
		res, err := Evaluate(cfg)
		require.NoError(t, err)

		p := res.Points[0]
		stall := cfg.BusVoltage / cfg.PhaseResistance
		assert.Equal(t, 0.0, p.Omega, "motor %d", i)
		assert.Equal(t, 0.0, p.BackEMF, "motor %d", i)
		assert.InDelta(t, stall, p.Current, 1e-12*stall, "motor %d", i)
		assert.InDelta(t, res.TorqueConstant*stall, p.Torque, 1e-12*stall, "motor %d", i)
		assert.Equal(t, 0.0, p.MechPower, "motor %d", i)
		assert.Equal(t, 0.0, p.Efficiency, "motor %d", i)
		assert.Equal(t, 0.0, p.CoreLoss, "motor %d", i)
	}
}

func TestEvaluate_NoLoadPoint(t *testing.T) {
	cfg := referenceConfig()
	res, err := Evaluate(cfg)
	require.NoError(t, err)

	p := res.Points[len(res.Points)-1]
	assert.InDelta(t, cfg.BusVoltage, p.BackEMF, 1e-9)
	assert.InDelta(t, 0.0, p.Current, 1e-9)
	assert.InDelta(t, 0.0, p.Torque, 1e-9)
	assert.InDelta(t, 0.0, p.CopperLoss, 1e-9)
	// base speed equals no-load speed here, so the full calibrated core loss shows up
	assert.InDelta(t, cfg.CoreLossAtBase, p.CoreLoss, 1e-9)
	// input power is below the guard threshold
	assert.Equal(t, 0.0, p.Efficiency)
}

func TestEvaluate_ThermalSummary(t *testing.T) {
	for i, cfg := range sweepConfigs() {
		res, err := Evaluate(cfg)
		require.NoError(t, err)

		want := math.Inf(-1)
		for _, p := range res.Points {
			want = math.Max(want, p.TotalLoss)
		}
		assert.Equal(t, want, res.MaxLoss, "motor %d", i)
		assert.Equal(t, res.MaxLoss*cfg.ThermalResistance, res.DeltaT, "motor %d", i)
		assert.Equal(t, cfg.AmbientTemp+res.DeltaT, res.CaseTemp, "motor %d", i)
	}
}

func TestEvaluate_CoreLossLinearity(t *testing.T) {
	cfg := referenceConfig()
	doubled := cfg
	doubled.CoreLossAtBase *= 2

	a, err := Evaluate(cfg)
	require.NoError(t, err)
	b, err := Evaluate(doubled)
	require.NoError(t, err)

	for i := range a.Points {
		assert.Equal(t, 2*a.Points[i].CoreLoss, b.Points[i].CoreLoss, "core loss at %d", i)
		assert.Equal(t, a.Points[i].CopperLoss, b.Points[i].CopperLoss, "copper loss at %d", i)
	}
}

func TestEvaluate_CoreLossAboveBaseSpeed(t *testing.T) {
	cfg := referenceConfig()
	cfg.BaseSpeedRPM = cfg.SpeedConstant * cfg.BusVoltage / 2

	res, err := Evaluate(cfg)
	require.NoError(t, err)

	// ratio reaches 2 at no-load; the quadratic law is not capped
	last := res.Points[len(res.Points)-1]
	assert.InDelta(t, 4*cfg.CoreLossAtBase, last.CoreLoss, 1e-9)
}

func TestEvaluate_ResamplingInvariance(t *testing.T) {
	coarse := referenceConfig()
	coarse.Samples = 101
	fine := coarse
	fine.Samples = 401

	a, err := Evaluate(coarse)
	require.NoError(t, err)
	b, err := Evaluate(fine)
	require.NoError(t, err)

	// fine index 4i lands on coarse index i
	for i, p := range a.Points {
		q := b.Points[4*i]
		require.InDelta(t, p.SpeedRPM, q.SpeedRPM, 1e-8, "speed at %d", i)
		assert.InDelta(t, p.Current, q.Current, 1e-8, "current at %d", i)
		assert.InDelta(t, p.Torque, q.Torque, 1e-8, "torque at %d", i)
		assert.InDelta(t, p.TotalLoss, q.TotalLoss, 1e-6, "loss at %d", i)
		assert.InDelta(t, p.Efficiency, q.Efficiency, 1e-8, "efficiency at %d", i)
	}
	assert.Equal(t, a.MaxLoss, b.MaxLoss)
}

func TestEvaluate_NoLoadCurrentIsInert(t *testing.T) {
	cfg := referenceConfig()
	other := cfg
	other.NoLoadCurrent = 5

	a, err := Evaluate(cfg)
	require.NoError(t, err)
	b, err := Evaluate(other)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero kv", func(c *Config) { c.SpeedConstant = 0 }, ErrSpeedConstant},
		{"nan kv", func(c *Config) { c.SpeedConstant = math.NaN() }, ErrSpeedConstant},
		{"negative resistance", func(c *Config) { c.PhaseResistance = -0.1 }, ErrPhaseResistance},
		{"zero resistance", func(c *Config) { c.PhaseResistance = 0 }, ErrPhaseResistance},
		{"zero bus voltage", func(c *Config) { c.BusVoltage = 0 }, ErrBusVoltage},
		{"inf bus voltage", func(c *Config) { c.BusVoltage = math.Inf(1) }, ErrBusVoltage},
		{"negative no-load current", func(c *Config) { c.NoLoadCurrent = -1 }, ErrNoLoadCurrent},
		{"negative core loss", func(c *Config) { c.CoreLossAtBase = -3 }, ErrCoreLoss},
		{"zero base speed", func(c *Config) { c.BaseSpeedRPM = 0 }, ErrBaseSpeed},
		{"one sample", func(c *Config) { c.Samples = 1 }, ErrSamples},
		{"no samples", func(c *Config) { c.Samples = 0 }, ErrSamples},
		{"negative thermal resistance", func(c *Config) { c.ThermalResistance = -0.15 }, ErrThermalResistance},
		{"nan ambient", func(c *Config) { c.AmbientTemp = math.NaN() }, ErrAmbientTemp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := referenceConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			res, err := Evaluate(cfg)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConfig_Validate_ReportsAllFailures(t *testing.T) {
	cfg := Config{Samples: 1}
	err := cfg.Validate()
	require.Error(t, err)

	for _, want := range []error{ErrSpeedConstant, ErrPhaseResistance, ErrBusVoltage, ErrBaseSpeed, ErrSamples} {
		assert.True(t, errors.Is(err, want), "missing %v", want)
	}
	assert.False(t, errors.Is(err, ErrCoreLoss), "zero core loss is valid")
	assert.False(t, errors.Is(err, ErrAmbientTemp), "zero ambient is valid")
}

func TestConfig_ZeroOptionalFieldsAreValid(t *testing.T) {
	cfg := referenceConfig()
	cfg.NoLoadCurrent = 0
	cfg.CoreLossAtBase = 0
	cfg.ThermalResistance = 0
	cfg.AmbientTemp = -40
	require.NoError(t, cfg.Validate())

	res, err := Evaluate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DeltaT)
	assert.Equal(t, -40.0, res.CaseTemp)
}

func TestDefaultConfig_MatchesReference(t *testing.T) {
	assert.Equal(t, referenceConfig(), *DefaultConfig())
	require.NoError(t, DefaultConfig().Validate())
}

func TestConstants(t *testing.T) {
	// 60 / (2π·1000)
	assert.InDelta(t, 60/(2*math.Pi*1000), BackEMFConstant(1000), 1e-15)
	assert.InDelta(t, 1.0, BackEMFConstant(60/(2*math.Pi)), 1e-12)
	assert.Equal(t, 0.042, TorqueConstant(0.042))
}

func TestSteadyState(t *testing.T) {
	dt, tc := SteadyState(100, 0.5, 25)
	assert.Equal(t, 50.0, dt)
	assert.Equal(t, 75.0, tc)

	dt, tc = SteadyState(0, 0.15, 27)
	assert.Equal(t, 0.0, dt)
	assert.Equal(t, 27.0, tc)
}

func TestResult_Columns(t *testing.T) {
	res, err := Evaluate(referenceConfig())
	require.NoError(t, err)

	for name, col := range map[string][]float64{
		"speed":      res.SpeedRPM(),
		"torque":     res.Torque(),
		"current":    res.Current(),
		"copper":     res.CopperLoss(),
		"core":       res.CoreLoss(),
		"total":      res.TotalLoss(),
		"efficiency": res.Efficiency(),
	} {
		assert.Len(t, col, len(res.Points), name)
	}
	assert.Equal(t, res.Points[17].Torque, res.Torque()[17])
	assert.Equal(t, res.Points[42].CoreLoss, res.CoreLoss()[42])
}

func TestResult_PeakEfficiency(t *testing.T) {
	res, err := Evaluate(referenceConfig())
	require.NoError(t, err)

	peak := res.PeakEfficiency()
	for _, p := range res.Points {
		assert.LessOrEqual(t, p.Efficiency, peak.Efficiency)
	}
	assert.Greater(t, peak.Efficiency, 0.9)
	assert.Less(t, peak.SpeedRPM, res.NoLoadRPM)

	assert.Equal(t, Point{}, (&Result{}).PeakEfficiency())
}

func ExampleEvaluate() {
	res, err := Evaluate(*DefaultConfig())
	if err != nil {
		panic(err)
	}
	fmt.Printf("ke=%.6f no-load=%.1f rpm stall=%.1f A max-loss=%.1f W T_case=%.1f °C\n",
		res.BackEMFConstant, res.NoLoadRPM, res.Points[0].Current, res.MaxLoss, res.CaseTemp)
	// Output:
	// ke=0.010380 no-load=13616.0 rpm stall=74.0 A max-loss=1095.2 W T_case=191.3 °C
}
