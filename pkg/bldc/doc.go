// Package bldc is an analytical steady-state performance model for a
// brushless / permanent-magnet DC motor driven from a DC bus.
//
// Overview
//
//   - Constants:
//     BackEMFConstant(kv) converts the speed constant (rpm/V) into ke (V per rad/s).
//     TorqueConstant(ke) returns kt (Nm/A), equal to ke for an ideal SI motor.
//
//   - Evaluate(cfg) (*Result, error):
//     Sweeps cfg.Samples evenly spaced speeds from standstill to the no-load
//     speed V/ke and returns one Point per speed plus a thermal summary.
//     The call is a pure function of cfg: no I/O, no shared state.
//
//   - Point fields:
//     SpeedRPM, Omega : speed in rpm and rad/s
//     BackEMF         : ke * omega
//     Current         : max(0, (V - BackEMF) / R)
//     Torque          : kt * Current
//     InputPower      : V * Current
//     MechPower       : Torque * omega
//     CopperLoss      : Current² * R
//     CoreLoss        : CoreLossAtBase * (rpm / BaseSpeedRPM)²
//     TotalLoss       : CopperLoss + CoreLoss
//     Efficiency      : MechPower / InputPower in [0,1]; 0 when InputPower <= 1e-6 W
//
//   - Thermal summary:
//     MaxLoss is the largest TotalLoss over the sweep, usually the stall point
//     where copper loss peaks. DeltaT = MaxLoss * ThermalResistance and
//     CaseTemp = AmbientTemp + DeltaT; see SteadyState.
//
//   - Errors (errs.go):
//     Config.Validate rejects non-positive KV, resistance, bus voltage or base
//     speed, negative losses or currents, and fewer than two samples. All
//     failures are reported together and match their sentinel with errors.Is.
//
// # Model limits
//
// The model covers the motoring quadrant only: current is clamped at zero
// above no-load speed instead of reversing. Core loss uses a quadratic speed
// law with no upper clamp on the speed ratio. NoLoadCurrent is carried in
// Config but no formula reads it.
//
// The temperature estimate assumes the motor sits at the worst-loss point
// long enough to reach equilibrium, which is conservative for any real duty
// cycle.
package bldc
