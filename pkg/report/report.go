// Package report renders a bldc.Result as a console summary, a per-point
// table, CSV, JSON or a standalone HTML page.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"text/tabwriter"

	"github.com/ja7ad/bldc/pkg/bldc"
	"github.com/ja7ad/bldc/pkg/types"
	"github.com/ja7ad/bldc/pkg/util"
)

// Summary writes the fixed-precision model summary.
func Summary(w io.Writer, cfg bldc.Config, res *bldc.Result) error {
	peak := res.PeakEfficiency()
	_, err := fmt.Fprintf(w, _summary,
		cfg.SpeedConstant,
		cfg.BusVoltage,
		cfg.PhaseResistance,
		res.BackEMFConstant,
		res.TorqueConstant,
		res.NoLoadRPM,
		res.MaxLoss,
		res.DeltaT,
		res.CaseTemp,
		peak.Efficiency*100, peak.SpeedRPM,
	)
	return err
}

// Table writes every stride-th point as an aligned table. The last point is
// always included. stride < 1 is treated as 1.
func Table(w io.Writer, res *bldc.Result, stride int) error {
	if stride < 1 {
		stride = 1
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEED (rpm)\tI (A)\tT (Nm)\tP_in (W)\tP_mech (W)\tP_cu (W)\tP_core (W)\tP_loss (W)\tETA (%)")
	fmt.Fprintln(tw, "-----------\t-----\t------\t--------\t----------\t--------\t----------\t----------\t-------")
	n := len(res.Points)
	for i, p := range res.Points {
		if i%stride != 0 && i != n-1 {
			continue
		}
		fmt.Fprintf(tw, "%.1f\t%.3f\t%.5f\t%.2f\t%.2f\t%.2f\t%.4f\t%.2f\t%.1f\n",
			p.SpeedRPM, p.Current, p.Torque, p.InputPower, p.MechPower,
			p.CopperLoss, p.CoreLoss, p.TotalLoss, p.Efficiency*100,
		)
	}
	return tw.Flush()
}

var _csvHeader = []string{
	"speed_rpm", "omega", "back_emf", "current", "torque",
	"p_in", "p_mech", "p_cu", "p_core", "p_loss", "efficiency",
}

// WriteCSV writes one header row and one row per point.
func WriteCSV(w io.Writer, res *bldc.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(_csvHeader); err != nil {
		return err
	}
	for _, p := range res.Points {
		_ = cw.Write([]string{
			util.FmtFloat(p.SpeedRPM), util.FmtFloat(p.Omega), util.FmtFloat(p.BackEMF),
			util.FmtFloat(p.Current), util.FmtFloat(p.Torque),
			util.FmtFloat(p.InputPower), util.FmtFloat(p.MechPower),
			util.FmtFloat(p.CopperLoss), util.FmtFloat(p.CoreLoss), util.FmtFloat(p.TotalLoss),
			util.FmtFloat(p.Efficiency),
		})
	}
	cw.Flush()
	return cw.Error()
}

// Document is the JSON form of a run: the inputs next to the result.
type Document struct {
	Config bldc.Config  `json:"config"`
	Result *bldc.Result `json:"result"`
}

// WriteJSON writes cfg and res as one indented JSON document.
func WriteJSON(w io.Writer, cfg bldc.Config, res *bldc.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Config: cfg, Result: res})
}

// WriteHTML renders the summary and the full point table as an HTML page.
func WriteHTML(w io.Writer, cfg bldc.Config, res *bldc.Result) error {
	type view struct {
		Config   bldc.Config
		Result   *bldc.Result
		NoLoad   string
		CaseTemp string
		Peak     bldc.Point
	}

	var buf bytes.Buffer
	data := view{
		Config:   cfg,
		Result:   res,
		NoLoad:   types.RPM(res.NoLoadRPM).Humanized() + " (" + types.RadPerSec(res.NoLoadOmega).Humanized() + ")",
		CaseTemp: types.Celsius(res.CaseTemp).Humanized(),
		Peak:     res.PeakEfficiency(),
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

const _summary = `=== BLDC Motor Model Summary ===
KV            : %.2f rpm/V
Bus Voltage   : %.2f V
Phase R       : %.4f ohm
ke (V/(rad/s)): %.6f
kt (Nm/A)     : %.6f
No-load speed : %.1f rpm
Max loss      : %.1f W
ΔT_est        : %.1f °C
T_case_est    : %.1f °C (steady-state)
Peak eff.     : %.1f %% at %.1f rpm
`

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"pct": func(x float64) float64 { return x * 100 },
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>BLDC Motor Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
</style>

<h1>BLDC Motor Report</h1>

<p class="small">
Points: {{len .Result.Points}} &nbsp;|&nbsp;
No-load: {{.NoLoad}} &nbsp;|&nbsp;
T(case): {{.CaseTemp}}
</p>

<h2>Motor</h2>
<ul>
<li>KV: {{printf "%.2f" .Config.SpeedConstant}} rpm/V</li>
<li>Bus voltage: {{printf "%.2f" .Config.BusVoltage}} V</li>
<li>Phase R: {{printf "%.4f" .Config.PhaseResistance}} ohm</li>
<li>Core loss: {{printf "%.2f" .Config.CoreLossAtBase}} W at {{printf "%.1f" .Config.BaseSpeedRPM}} rpm</li>
<li>R(th): {{printf "%.2f" .Config.ThermalResistance}} °C/W, ambient {{printf "%.1f" .Config.AmbientTemp}} °C</li>
</ul>

<h2>Summary</h2>
<ul>
<li>ke: {{printf "%.6f" .Result.BackEMFConstant}} V/(rad/s)</li>
<li>kt: {{printf "%.6f" .Result.TorqueConstant}} Nm/A</li>
<li>No-load speed: {{printf "%.1f" .Result.NoLoadRPM}} rpm</li>
<li>Max loss: {{printf "%.1f" .Result.MaxLoss}} W</li>
<li>ΔT: {{printf "%.1f" .Result.DeltaT}} °C</li>
<li>T(case): {{printf "%.1f" .Result.CaseTemp}} °C (steady-state)</li>
<li>Peak efficiency: {{printf "%.1f" (pct .Peak.Efficiency)}} % at {{printf "%.1f" .Peak.SpeedRPM}} rpm</li>
</ul>

<h2>Sweep</h2>
<table>
<thead>
<tr>
<th>rpm</th><th>I (A)</th><th>T (Nm)</th><th>P_in (W)</th><th>P_mech (W)</th>
<th>P_cu (W)</th><th>P_core (W)</th><th>P_loss (W)</th><th>eta (%)</th>
</tr>
</thead>
<tbody>
{{range .Result.Points}}
<tr>
<td>{{printf "%.1f" .SpeedRPM}}</td>
<td>{{printf "%.3f" .Current}}</td>
<td>{{printf "%.5f" .Torque}}</td>
<td>{{printf "%.2f" .InputPower}}</td>
<td>{{printf "%.2f" .MechPower}}</td>
<td>{{printf "%.2f" .CopperLoss}}</td>
<td>{{printf "%.4f" .CoreLoss}}</td>
<td>{{printf "%.2f" .TotalLoss}}</td>
<td>{{printf "%.1f" (pct .Efficiency)}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
