// Package construction estimates building material quantities.
package construction

import (
	"fmt"
	"math"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

const (
	defaultCoats         = 2
	defaultCoverage      = 10.0
	defaultPaintWaste    = 5.0
	defaultTileWaste     = 10.0
	defaultConcreteWaste = 5.0
	// defaultBagYield is the volume of mixed concrete from one 40 kg bag.
	defaultBagYield = 0.018
)

// All returns every construction calculator.
func All() []widget.Widget {
	return []widget.Widget{Paint(), Tiles(), Concrete()}
}

// ceilClean rounds up, ignoring floating point noise just above an integer.
func ceilClean(v float64) float64 {
	return math.Ceil(v - 1e-9)
}

func withWaste(v, wastePct float64) float64 {
	return v * (1 + wastePct/constants.PercentageMultiplier)
}

type paintInput struct {
	area     float64
	openings float64
	coats    float64
	coverage float64
	waste    float64
}

type paintOutput struct {
	paintable float64
	litres    float64
}

// Paint estimates litres of paint for a wall area.
func Paint() widget.Widget {
	return widget.Definition[paintInput, paintOutput]{
		Meta: widget.Info{
			Slug:        "paint",
			Title:       "Paint Calculator",
			Category:    widget.CategoryConstruction,
			Description: "Litres of paint needed for walls, allowing for doors and windows.",
			Fields: []widget.Field{
				widget.Number("area", "Total wall area").WithUnit("m²"),
				widget.Number("openings", "Doors and windows").WithUnit("m²").AsOptional(),
				widget.Number("coats", "Coats").AsOptional().WithDefault("2"),
				widget.Number("coverage", "Coverage").WithUnit("m²/L").AsOptional().WithDefault("10"),
				widget.Number("waste", "Waste allowance").WithUnit("%").AsOptional().WithDefault("5"),
			},
		},
		Gather: func(f widget.Form) (paintInput, error) {
			in := paintInput{
				area:     f.Number("area"),
				openings: f.Optional("openings", 0),
				coats:    f.Optional("coats", defaultCoats),
				coverage: f.Optional("coverage", defaultCoverage),
				waste:    f.Optional("waste", defaultPaintWaste),
			}
			return in, validation.First(
				validation.Positive("area", "Wall area", in.area),
				validation.NonNegative("openings", "Openings area", in.openings),
				validation.AtMost("openings", "Openings area exceeds total area.", in.openings, in.area),
				validation.Range("coats", "Coats", in.coats, 1, 10),
				validation.Integer("coats", "Coats", in.coats),
				validation.Positive("coverage", "Coverage", in.coverage),
				validation.PercentRange("waste", "Waste allowance", in.waste, 0, 100),
			)
		},
		Compute: func(in paintInput) paintOutput {
			paintable := in.area - in.openings
			return paintOutput{
				paintable: paintable,
				litres:    withWaste(paintable*in.coats/in.coverage, in.waste),
			}
		},
		Present: func(f *format.Formatter, in paintInput, out paintOutput) widget.Result {
			var r widget.Result
			r.Headline = "Paint required"
			r.Add("Paintable area", f.TwoDecimals(out.paintable)+" m²")
			r.Emphasize("Paint needed", f.TwoDecimals(out.litres)+" L")
			r.Add("Rounded up", f.Integer(ceilClean(out.litres))+" L")
			r.Summary = fmt.Sprintf("%s m² with %s needs %s L of paint.",
				f.TwoDecimals(out.paintable), format.Plural(int(in.coats), "coat", "coats"), f.TwoDecimals(out.litres))
			return r
		},
	}
}

type tileInput struct {
	area        float64
	lengthCm    float64
	widthCm     float64
	waste       float64
	tilesPerBox float64
}

type tileOutput struct {
	tileArea float64
	tiles    float64
	boxes    float64
}

// Tiles estimates tiles and boxes for a floor.
func Tiles() widget.Widget {
	return widget.Definition[tileInput, tileOutput]{
		Meta: widget.Info{
			Slug:        "tiles",
			Title:       "Tile Calculator",
			Category:    widget.CategoryConstruction,
			Description: "Number of tiles and boxes for a floor or wall.",
			Fields: []widget.Field{
				widget.Number("area", "Area to tile").WithUnit("m²"),
				widget.Number("length", "Tile length").WithUnit("cm"),
				widget.Number("width", "Tile width").WithUnit("cm"),
				widget.Number("waste", "Waste allowance").WithUnit("%").AsOptional().WithDefault("10"),
				widget.Number("perBox", "Tiles per box").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (tileInput, error) {
			in := tileInput{
				area:        f.Number("area"),
				lengthCm:    f.Number("length"),
				widthCm:     f.Number("width"),
				waste:       f.Optional("waste", defaultTileWaste),
				tilesPerBox: f.Optional("perBox", 0),
			}
			err := validation.First(
				validation.Positive("area", "Area", in.area),
				validation.Positive("length", "Tile length", in.lengthCm),
				validation.Positive("width", "Tile width", in.widthCm),
				validation.PercentRange("waste", "Waste allowance", in.waste, 0, 100),
			)
			if err == nil && f.Present("perBox") {
				err = validation.First(
					validation.Positive("perBox", "Tiles per box", in.tilesPerBox),
					validation.Integer("perBox", "Tiles per box", in.tilesPerBox),
				)
			}
			return in, err
		},
		Compute: func(in tileInput) tileOutput {
			tileArea := in.lengthCm * in.widthCm / 10000
			out := tileOutput{
				tileArea: tileArea,
				tiles:    ceilClean(withWaste(in.area/tileArea, in.waste)),
			}
			if in.tilesPerBox > 0 {
				out.boxes = ceilClean(out.tiles / in.tilesPerBox)
			}
			return out
		},
		Present: func(f *format.Formatter, _ tileInput, out tileOutput) widget.Result {
			var r widget.Result
			r.Headline = "Tiles required"
			r.Add("Area per tile", f.Decimals(out.tileArea, 4)+" m²")
			r.Emphasize("Tiles needed", f.Integer(out.tiles))
			if out.boxes > 0 {
				r.Add("Boxes", f.Integer(out.boxes))
			}
			r.Summary = "Tiles needed: " + f.Integer(out.tiles)
			return r
		},
	}
}

type concreteInput struct {
	length   float64
	width    float64
	depthMm  float64
	waste    float64
	bagYield float64
}

type concreteOutput struct {
	volume float64
	total  float64
	bags   float64
}

// Concrete estimates the volume and bag count for a slab.
func Concrete() widget.Widget {
	return widget.Definition[concreteInput, concreteOutput]{
		Meta: widget.Info{
			Slug:        "concrete",
			Title:       "Concrete Calculator",
			Category:    widget.CategoryConstruction,
			Description: "Concrete volume and number of bags for a slab.",
			Fields: []widget.Field{
				widget.Number("length", "Length").WithUnit("m"),
				widget.Number("width", "Width").WithUnit("m"),
				widget.Number("depth", "Depth").WithUnit("mm"),
				widget.Number("waste", "Waste allowance").WithUnit("%").AsOptional().WithDefault("5"),
				widget.Number("yield", "Yield per bag").WithUnit("m³").AsOptional().
					WithDefault(format.Fixed(defaultBagYield, 3)),
			},
		},
		Gather: func(f widget.Form) (concreteInput, error) {
			in := concreteInput{
				length:   f.Number("length"),
				width:    f.Number("width"),
				depthMm:  f.Number("depth"),
				waste:    f.Optional("waste", defaultConcreteWaste),
				bagYield: f.Optional("yield", defaultBagYield),
			}
			return in, validation.First(
				validation.Positive("length", "Length", in.length),
				validation.Positive("width", "Width", in.width),
				validation.Positive("depth", "Depth", in.depthMm),
				validation.PercentRange("waste", "Waste allowance", in.waste, 0, 100),
				validation.Positive("yield", "Yield per bag", in.bagYield),
			)
		},
		Compute: func(in concreteInput) concreteOutput {
			volume := in.length * in.width * in.depthMm / 1000
			total := withWaste(volume, in.waste)
			return concreteOutput{volume: volume, total: total, bags: ceilClean(total / in.bagYield)}
		},
		Present: func(f *format.Formatter, _ concreteInput, out concreteOutput) widget.Result {
			var r widget.Result
			r.Headline = "Concrete required"
			r.Add("Slab volume", f.Decimals(out.volume, 3)+" m³")
			r.Emphasize("Volume with waste", f.Decimals(out.total, 3)+" m³")
			r.Emphasize("Bags", f.Integer(out.bags))
			r.Summary = fmt.Sprintf("%s m³ of concrete: %s bags.", f.Decimals(out.total, 3), f.Integer(out.bags))
			return r
		},
	}
}
