package main

import (
	"github.com/spf13/pflag"

	"github.com/ja7ad/bldc/pkg/bldc"
)

func bindFlags(fs *pflag.FlagSet, o *opts) {
	def := bldc.DefaultConfig()

	fs.StringVarP(&o.configPath, "config", "c", "", "YAML file with motor parameters (flags override it)")

	fs.Float64Var(&o.model.SpeedConstant, "kv", def.SpeedConstant, "speed constant in rpm/V")
	fs.Float64VarP(&o.model.PhaseResistance, "resistance", "r", def.PhaseResistance, "phase resistance in ohm")
	fs.Float64Var(&o.model.BusVoltage, "bus-voltage", def.BusVoltage, "DC bus voltage in V")
	fs.Float64Var(&o.model.NoLoadCurrent, "no-load-current", def.NoLoadCurrent, "no-load current in A (recorded, not used by the model)")
	fs.Float64Var(&o.model.CoreLossAtBase, "core-loss", def.CoreLossAtBase, "core+mechanical loss in W at base speed")
	fs.Float64Var(&o.model.BaseSpeedRPM, "base-speed", 0, "base speed in rpm for core-loss scaling (0 = kv x bus voltage)")
	fs.IntVarP(&o.model.Samples, "samples", "n", def.Samples, "number of points in the speed sweep (>= 2)")
	fs.Float64Var(&o.model.ThermalResistance, "thermal-resistance", def.ThermalResistance, "case-to-ambient thermal resistance in °C/W")
	fs.Float64Var(&o.model.AmbientTemp, "ambient", def.AmbientTemp, "ambient temperature in °C")

	fs.StringVarP(&o.plotDir, "out", "o", "plots", "directory for the PNG charts (created if missing)")
	fs.BoolVar(&o.noPlots, "no-plots", false, "skip chart rendering")
	fs.IntVar(&o.tableStride, "table", 0, "print every Nth sweep point as a table (0 = off)")
	fs.StringVar(&o.csvPath, "csv", "", "write per-point rows to CSV file")
	fs.StringVar(&o.jsonPath, "json", "", "write config and result to JSON file")
	fs.StringVar(&o.htmlPath, "html", "", "write summary and per-point rows to HTML file")
	fs.BoolVar(&o.printConfig, "print-config", false, "print the effective configuration as YAML and exit")

	fs.BoolVar(&o.verbose, "verbose", false, "enable debug logging")
}

// overlay copies the model flags the user set explicitly from src into dst.
func overlay(fs *pflag.FlagSet, dst *bldc.Config, src bldc.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "kv":
			dst.SpeedConstant = src.SpeedConstant
		case "resistance":
			dst.PhaseResistance = src.PhaseResistance
		case "bus-voltage":
			dst.BusVoltage = src.BusVoltage
		case "no-load-current":
			dst.NoLoadCurrent = src.NoLoadCurrent
		case "core-loss":
			dst.CoreLossAtBase = src.CoreLossAtBase
		case "base-speed":
			dst.BaseSpeedRPM = src.BaseSpeedRPM
		case "samples":
			dst.Samples = src.Samples
		case "thermal-resistance":
			dst.ThermalResistance = src.ThermalResistance
		case "ambient":
			dst.AmbientTemp = src.AmbientTemp
		}
	})
}
