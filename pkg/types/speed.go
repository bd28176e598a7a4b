package types

import (
	"fmt"
	"math"
)

// rpmPerRadPerSec converts angular speed from rad/s to revolutions per minute.
const rpmPerRadPerSec = 60 / (2 * math.Pi)

// RPM is a mechanical speed in revolutions per minute.
type RPM float64

// RadPerSec is an angular speed in radians per second.
type RadPerSec float64

// RadPerSec converts r to rad/s.
func (r RPM) RadPerSec() RadPerSec { return RadPerSec(float64(r) / rpmPerRadPerSec) }

// Humanized returns the speed with one decimal, e.g. "13616.0 rpm".
func (r RPM) Humanized() string { return fmt.Sprintf("%.1f rpm", float64(r)) }

// RPM converts w to revolutions per minute.
func (w RadPerSec) RPM() RPM { return RPM(float64(w) * rpmPerRadPerSec) }

// Humanized returns the speed with two decimals, e.g. "1425.88 rad/s".
func (w RadPerSec) Humanized() string { return fmt.Sprintf("%.2f rad/s", float64(w)) }
