package bldc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ja7ad/bldc/pkg/types"
	"github.com/ja7ad/bldc/pkg/util"
)

// minInputPower is the input power below which efficiency is reported as 0.
const minInputPower = 1e-6 // W

// BackEMFConstant converts a speed constant in rpm/V into the back-EMF
// constant ke in V/(rad/s). For an ideal DC motor model:
//
//	ke = 1 / (KV * 2π/60)
func BackEMFConstant(kv float64) float64 {
	return 1.0 / float64(types.RPM(kv).RadPerSec())
}

// TorqueConstant returns kt in Nm/A for a back-EMF constant ke in V/(rad/s).
//
// kt equals ke only for an ideal motor with both constants in SI units
// (volts, amps, newton-metres, radians). A motor quoted with kt in other
// units, or with significant saturation or commutation losses, will not
// satisfy this and the torque figures will be off by that factor.
func TorqueConstant(ke float64) float64 {
	return ke
}

// Validate reports every field outside its domain, joined into one error.
// Each failure wraps one of the Err* sentinels.
func (c *Config) Validate() error {
	var errs []error
	positive := func(v float64, sentinel error) {
		if !(v > 0) || !util.Finite(v) {
			errs = append(errs, fmt.Errorf("%w: got %g", sentinel, v))
		}
	}
	nonNegative := func(v float64, sentinel error) {
		if !(v >= 0) || !util.Finite(v) {
			errs = append(errs, fmt.Errorf("%w: got %g", sentinel, v))
		}
	}

	positive(c.SpeedConstant, ErrSpeedConstant)
	positive(c.PhaseResistance, ErrPhaseResistance)
	positive(c.BusVoltage, ErrBusVoltage)
	nonNegative(c.NoLoadCurrent, ErrNoLoadCurrent)
	nonNegative(c.CoreLossAtBase, ErrCoreLoss)
	positive(c.BaseSpeedRPM, ErrBaseSpeed)
	if c.Samples < 2 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrSamples, c.Samples))
	}
	nonNegative(c.ThermalResistance, ErrThermalResistance)
	if !util.Finite(c.AmbientTemp) {
		errs = append(errs, fmt.Errorf("%w: got %g", ErrAmbientTemp, c.AmbientTemp))
	}

	return errors.Join(errs...)
}

// Evaluate validates cfg and computes the torque-speed sweep from standstill
// to no-load speed, the losses and efficiency at each point, and the
// steady-state temperature at the worst-loss point.
//
// The returned Result is independent of cfg and safe to share.
func Evaluate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ke := BackEMFConstant(cfg.SpeedConstant)
	kt := TorqueConstant(ke)

	omegaNoLoad := types.RadPerSec(cfg.BusVoltage / ke)
	rpmNoLoad := omegaNoLoad.RPM()

	speeds := floats.Span(make([]float64, cfg.Samples), 0, float64(rpmNoLoad))

	points := make([]Point, cfg.Samples)
	losses := make([]float64, cfg.Samples)
	for i, rpm := range speeds {
		points[i] = evaluatePoint(cfg, ke, kt, rpm)
		losses[i] = points[i].TotalLoss
	}

	maxLoss := floats.Max(losses)
	deltaT, caseTemp := SteadyState(maxLoss, cfg.ThermalResistance, cfg.AmbientTemp)

	return &Result{
		BackEMFConstant: ke,
		TorqueConstant:  kt,
		NoLoadRPM:       float64(rpmNoLoad),
		NoLoadOmega:     float64(omegaNoLoad),
		MaxLoss:         maxLoss,
		DeltaT:          deltaT,
		CaseTemp:        caseTemp,
		Points:          points,
	}, nil
}

// evaluatePoint applies the one-quadrant DC model at a single speed.
func evaluatePoint(cfg Config, ke, kt, rpm float64) Point {
	omega := float64(types.RPM(rpm).RadPerSec())

	emf := ke * omega

	// I = (V - E) / R; motoring only, so current never reverses
	current := math.Max((cfg.BusVoltage-emf)/cfg.PhaseResistance, 0)

	torque := kt * current
	pin := cfg.BusVoltage * current
	pmech := torque * omega

	pcu := current * current * cfg.PhaseResistance

	// core + mechanical losses scale with (speed/base)^2, calibrated at base speed
	ratio := util.NonNegative(rpm / cfg.BaseSpeedRPM)
	pcore := cfg.CoreLossAtBase * ratio * ratio

	var eta float64
	if pin > minInputPower {
		eta = pmech / pin
	}

	return Point{
		SpeedRPM:   rpm,
		Omega:      omega,
		BackEMF:    emf,
		Current:    current,
		Torque:     torque,
		InputPower: pin,
		MechPower:  pmech,
		CopperLoss: pcu,
		CoreLoss:   pcore,
		TotalLoss:  pcu + pcore,
		Efficiency: util.Clamp01(eta),
	}
}

// SteadyState estimates the temperature rise and absolute case temperature
// for a motor dissipating loss watts continuously through a lumped thermal
// resistance rth (°C/W) into ambient (°C).
//
//	ΔT     = loss * rth
//	T_case = ambient + ΔT
func SteadyState(loss, rth, ambient float64) (deltaT, caseTemp float64) {
	// the conversion rounds ΔT before the add so T_case - ambient == ΔT exactly
	deltaT = float64(loss * rth)
	return deltaT, ambient + deltaT
}
