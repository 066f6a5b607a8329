// Package engineering holds electrical and thermal calculators.
package engineering

import (
	"fmt"
	"math"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// All returns every engineering calculator.
func All() []widget.Widget {
	return []widget.Widget{OhmsLaw(), ElectricityCost(), AirConditioner(), HeatEnergy()}
}

// SolveFor is the quantity Ohm's law is solved for.
type SolveFor string

// Ohm's law targets.
const (
	SolveVoltage    SolveFor = "voltage"
	SolveCurrent    SolveFor = "current"
	SolveResistance SolveFor = "resistance"
	SolvePower      SolveFor = "power"
)

// Circuit holds the four related electrical quantities.
type Circuit struct {
	Voltage    float64
	Current    float64
	Resistance float64
	Power      float64
}

type ohmsInput struct {
	target SolveFor
	known  Circuit
}

// knowns lists which two inputs each target requires.
var knowns = map[SolveFor][2]string{
	SolveVoltage:    {"current", "resistance"},
	SolveCurrent:    {"voltage", "resistance"},
	SolveResistance: {"voltage", "current"},
	SolvePower:      {"voltage", "current"},
}

var quantityLabels = map[string]string{
	"voltage":    "Voltage",
	"current":    "Current",
	"resistance": "Resistance",
}

// OhmsLaw solves V = IR and P = VI from two known quantities.
func OhmsLaw() widget.Widget {
	return widget.Definition[ohmsInput, Circuit]{
		Meta: widget.Info{
			Slug:        "ohms-law",
			Title:       "Ohm's Law Calculator",
			Category:    widget.CategoryEngineering,
			Description: "Voltage, current, resistance and power from two known values.",
			Fields: []widget.Field{
				widget.Select("solve", "Solve for",
					widget.Option{Value: string(SolveVoltage), Label: "Voltage (V)"},
					widget.Option{Value: string(SolveCurrent), Label: "Current (A)"},
					widget.Option{Value: string(SolveResistance), Label: "Resistance (Ω)"},
					widget.Option{Value: string(SolvePower), Label: "Power (W)"},
				),
				widget.Number("voltage", "Voltage").WithUnit("V").AsOptional(),
				widget.Number("current", "Current").WithUnit("A").AsOptional(),
				widget.Number("resistance", "Resistance").WithUnit("Ω").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (ohmsInput, error) {
			in := ohmsInput{
				target: widget.Choice(f, "solve", SolveVoltage, SolveVoltage, SolveCurrent, SolveResistance, SolvePower),
			}
			values := map[string]float64{}
			for _, name := range knowns[in.target] {
				v := f.Number(name)
				if err := validation.Positive(name, quantityLabels[name], v); err != nil {
					return in, err
				}
				values[name] = v
			}
			in.known = Circuit{
				Voltage:    values["voltage"],
				Current:    values["current"],
				Resistance: values["resistance"],
			}
			return in, nil
		},
		Compute: func(in ohmsInput) Circuit {
			return Solve(in.target, in.known)
		},
		Present: func(f *format.Formatter, in ohmsInput, c Circuit) widget.Result {
			var r widget.Result
			r.Headline = "Ohm's law"
			rows := []struct {
				target SolveFor
				label  string
				value  string
			}{
				{SolveVoltage, "Voltage", f.Decimals(c.Voltage, 4) + " V"},
				{SolveCurrent, "Current", f.Decimals(c.Current, 4) + " A"},
				{SolveResistance, "Resistance", f.Decimals(c.Resistance, 4) + " Ω"},
				{SolvePower, "Power", f.Decimals(c.Power, 4) + " W"},
			}
			for _, row := range rows {
				if row.target == in.target {
					r.Emphasize(row.label, row.value)
					r.Summary = row.label + " = " + row.value
				} else {
					r.Add(row.label, row.value)
				}
			}
			return r
		},
	}
}

// Solve fills in every quantity of c from the two knowns for target.
func Solve(target SolveFor, c Circuit) Circuit {
	switch target {
	case SolveVoltage:
		c.Voltage = c.Current * c.Resistance
	case SolveCurrent:
		c.Current = c.Voltage / c.Resistance
	case SolveResistance, SolvePower:
		c.Resistance = c.Voltage / c.Current
	}
	c.Power = c.Voltage * c.Current
	return c
}

type electricityInput struct {
	watts  float64
	hours  float64
	days   float64
	tariff float64
}

type electricityOutput struct {
	kWh      float64
	cost     float64
	daily    float64
	dailyKWh float64
}

// ElectricityCost prices an appliance's energy use.
func ElectricityCost() widget.Widget {
	return widget.Definition[electricityInput, electricityOutput]{
		Meta: widget.Info{
			Slug:        "electricity-cost",
			Title:       "Electricity Cost Calculator",
			Category:    widget.CategoryEngineering,
			Description: "Energy use and running cost of an appliance.",
			Fields: []widget.Field{
				widget.Number("watts", "Power rating").WithUnit("W"),
				widget.Number("hours", "Hours per day"),
				widget.Number("days", "Days").AsOptional().WithDefault("30"),
				widget.Money("tariff", "Tariff per kWh"),
			},
		},
		Gather: func(f widget.Form) (electricityInput, error) {
			in := electricityInput{
				watts:  f.Number("watts"),
				hours:  f.Number("hours"),
				days:   f.Optional("days", 30),
				tariff: f.Number("tariff"),
			}
			return in, validation.First(
				validation.Positive("watts", "Power rating", in.watts),
				validation.Range("hours", "Hours per day", in.hours, 0, 24),
				validation.Positive("days", "Days", in.days),
				validation.NonNegative("tariff", "Tariff", in.tariff),
			)
		},
		Compute: func(in electricityInput) electricityOutput {
			dailyKWh := in.watts * in.hours / 1000
			return electricityOutput{
				dailyKWh: dailyKWh,
				daily:    dailyKWh * in.tariff,
				kWh:      dailyKWh * in.days,
				cost:     dailyKWh * in.days * in.tariff,
			}
		},
		Present: func(f *format.Formatter, in electricityInput, out electricityOutput) widget.Result {
			var r widget.Result
			r.Headline = "Electricity cost"
			r.Add("Energy per day", f.Decimals(out.dailyKWh, 3)+" kWh")
			r.Add("Cost per day", f.Currency(out.daily))
			r.Add("Energy for period", f.Decimals(out.kWh, 3)+" kWh")
			r.Emphasize("Cost for period", f.Currency(out.cost))
			r.Summary = fmt.Sprintf("A %s W appliance costs %s over %s days.",
				format.Fixed(in.watts, 0), f.Currency(out.cost), format.Fixed(in.days, 0))
			return r
		},
	}
}

// SunExposure scales cooling load for how much sun a room gets.
type SunExposure string

// Sun exposure levels.
const (
	SunLow    SunExposure = "low"
	SunMedium SunExposure = "medium"
	SunHigh   SunExposure = "high"
)

func (s SunExposure) factor() float64 {
	switch s {
	case SunLow:
		return 0.9
	case SunHigh:
		return 1.1
	default:
		return 1.0
	}
}

const (
	btuPerCubicMetre  = 141.0
	btuPerExtraPerson = 600.0
	baseOccupants     = 2
	wattsPerBTU       = 0.29307107
	defaultCeiling    = 2.4
)

// StandardUnitSizes are common split unit capacities in BTU/h.
var StandardUnitSizes = []float64{9000, 12000, 18000, 24000, 30000, 36000, 48000, 60000}

type aircon struct {
	length    float64
	width     float64
	height    float64
	sun       SunExposure
	occupants float64
}

type airconOutput struct {
	btu       float64
	kW        float64
	unitSize  float64
	oversized bool
}

// AirConditioner sizes a cooling unit for a room.
func AirConditioner() widget.Widget {
	return widget.Definition[aircon, airconOutput]{
		Meta: widget.Info{
			Slug:        "air-conditioner",
			Title:       "Air Conditioner Size Calculator",
			Category:    widget.CategoryEngineering,
			Description: "Cooling capacity needed for a room, in BTU/h and kW.",
			Fields: []widget.Field{
				widget.Number("length", "Room length").WithUnit("m"),
				widget.Number("width", "Room width").WithUnit("m"),
				widget.Number("height", "Ceiling height").WithUnit("m").AsOptional().WithDefault("2.4"),
				widget.Select("sun", "Sun exposure",
					widget.Option{Value: string(SunMedium), Label: "Medium"},
					widget.Option{Value: string(SunLow), Label: "Low (shaded)"},
					widget.Option{Value: string(SunHigh), Label: "High (sunny)"},
				),
				widget.Number("occupants", "Occupants").AsOptional().WithDefault("2"),
			},
		},
		Gather: func(f widget.Form) (aircon, error) {
			in := aircon{
				length:    f.Number("length"),
				width:     f.Number("width"),
				height:    f.Optional("height", defaultCeiling),
				sun:       widget.Choice(f, "sun", SunMedium, SunLow, SunMedium, SunHigh),
				occupants: f.Optional("occupants", baseOccupants),
			}
			return in, validation.First(
				validation.Positive("length", "Room length", in.length),
				validation.Positive("width", "Room width", in.width),
				validation.Positive("height", "Ceiling height", in.height),
				validation.NonNegative("occupants", "Occupants", in.occupants),
				validation.Integer("occupants", "Occupants", in.occupants),
			)
		},
		Compute: func(in aircon) airconOutput {
			btu := in.length * in.width * in.height * btuPerCubicMetre * in.sun.factor()
			if extra := in.occupants - baseOccupants; extra > 0 {
				btu += extra * btuPerExtraPerson
			}
			out := airconOutput{btu: btu, kW: btu * wattsPerBTU / 1000}
			out.unitSize, out.oversized = recommendedUnit(btu)
			return out
		},
		Present: func(f *format.Formatter, _ aircon, out airconOutput) widget.Result {
			var r widget.Result
			r.Headline = "Air conditioner size"
			r.Emphasize("Cooling required", f.Integer(math.Round(out.btu))+" BTU/h")
			r.Add("Cooling required (kW)", f.TwoDecimals(out.kW)+" kW")
			if out.oversized {
				r.Add("Recommended unit", "More than one unit")
				r.Note("The load exceeds the largest standard unit; consider multiple units.")
			} else {
				r.Add("Recommended unit", f.Integer(out.unitSize)+" BTU/h")
			}
			r.Summary = "Recommended air conditioner: " + f.Integer(out.unitSize) + " BTU/h"
			return r
		},
	}
}

// recommendedUnit returns the smallest standard size covering btu. The
// second result reports a load above every standard size.
func recommendedUnit(btu float64) (float64, bool) {
	for _, size := range StandardUnitSizes {
		if btu <= size {
			return size, false
		}
	}
	return StandardUnitSizes[len(StandardUnitSizes)-1], true
}

const specificHeatWater = 4186.0

type heatInput struct {
	mass   float64
	c      float64
	deltaT float64
}

// HeatEnergy computes Q = mcΔT.
func HeatEnergy() widget.Widget {
	return widget.Definition[heatInput, float64]{
		Meta: widget.Info{
			Slug:        "heat-energy",
			Title:       "Heat Energy Calculator",
			Category:    widget.CategoryEngineering,
			Description: "Energy needed to change the temperature of a mass (Q = mcΔT).",
			Fields: []widget.Field{
				widget.Number("mass", "Mass").WithUnit("kg"),
				widget.Number("c", "Specific heat").WithUnit("J/kg·K").AsOptional().WithDefault("4186").
					WithHint("Water is 4186."),
				widget.Number("deltaT", "Temperature change").WithUnit("°C"),
			},
		},
		Gather: func(f widget.Form) (heatInput, error) {
			in := heatInput{
				mass:   f.Number("mass"),
				c:      f.Optional("c", specificHeatWater),
				deltaT: f.Number("deltaT"),
			}
			return in, validation.First(
				validation.Positive("mass", "Mass", in.mass),
				validation.Positive("c", "Specific heat", in.c),
				validation.Finite("deltaT", "Temperature change", in.deltaT),
			)
		},
		Compute: func(in heatInput) float64 {
			return in.mass * in.c * in.deltaT
		},
		Present: func(f *format.Formatter, _ heatInput, joules float64) widget.Result {
			var r widget.Result
			r.Headline = "Heat energy"
			r.Add("Energy", f.Integer(joules)+" J")
			r.Emphasize("Energy (kJ)", f.TwoDecimals(joules/1000)+" kJ")
			r.Add("Energy (kWh)", f.Decimals(joules/3.6e6, 4)+" kWh")
			if joules < 0 {
				r.Note("A negative value is heat released while cooling.")
			}
			r.Summary = "Heat energy: " + f.TwoDecimals(joules/1000) + " kJ"
			return r
		},
	}
}
