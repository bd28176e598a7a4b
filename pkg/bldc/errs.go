package bldc

import "errors"

var (
	// ErrSpeedConstant indicates a speed constant that is not a positive finite number.
	ErrSpeedConstant = errors.New("bldc: speed constant must be > 0")

	// ErrPhaseResistance indicates a phase resistance that is not a positive finite number.
	ErrPhaseResistance = errors.New("bldc: phase resistance must be > 0")

	// ErrBusVoltage indicates a bus voltage that is not a positive finite number.
	ErrBusVoltage = errors.New("bldc: bus voltage must be > 0")

	// ErrNoLoadCurrent indicates a negative or non-finite no-load current.
	ErrNoLoadCurrent = errors.New("bldc: no-load current must be >= 0")

	// ErrCoreLoss indicates a negative or non-finite core loss at base speed.
	ErrCoreLoss = errors.New("bldc: core loss must be >= 0")

	// ErrBaseSpeed indicates a base speed that is not a positive finite number.
	ErrBaseSpeed = errors.New("bldc: base speed must be > 0")

	// ErrSamples indicates a sweep with fewer than two points.
	ErrSamples = errors.New("bldc: sample count must be >= 2")

	// ErrThermalResistance indicates a negative or non-finite thermal resistance.
	ErrThermalResistance = errors.New("bldc: thermal resistance must be >= 0")

	// ErrAmbientTemp indicates a non-finite ambient temperature.
	ErrAmbientTemp = errors.New("bldc: ambient temperature must be finite")
)
