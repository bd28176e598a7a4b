package types

import "fmt"

// Celsius is a temperature in degrees Celsius.
type Celsius float64

// Humanized returns the temperature with one decimal, e.g. "191.3 °C".
func (c Celsius) Humanized() string { return fmt.Sprintf("%.1f °C", float64(c)) }
