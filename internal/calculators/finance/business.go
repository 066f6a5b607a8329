package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/mathutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// VATMode selects whether VAT is added to or extracted from an amount.
type VATMode string

// VAT modes.
const (
	VATAdd    VATMode = "add"
	VATRemove VATMode = "remove"
)

type vatInput struct {
	amount float64
	rate   float64
	mode   VATMode
}

type vatOutput struct {
	net   float64
	vat   float64
	gross float64
}

// VAT adds VAT to an exclusive amount or extracts it from an inclusive one.
func VAT() widget.Widget {
	return widget.Definition[vatInput, vatOutput]{
		Meta: widget.Info{
			Slug:        "vat",
			Title:       "VAT Calculator",
			Category:    widget.CategoryFinance,
			Description: "Add VAT to a price or work out the VAT included in it.",
			Fields: []widget.Field{
				widget.Money("amount", "Amount"),
				widget.Number("rate", "VAT rate").WithUnit("%").AsOptional().
					WithDefault(format.Fixed(constants.DefaultVATRate, 0)),
				widget.Select("mode", "Calculation",
					widget.Option{Value: string(VATAdd), Label: "Add VAT (amount excludes VAT)"},
					widget.Option{Value: string(VATRemove), Label: "Remove VAT (amount includes VAT)"},
				),
			},
		},
		Gather: func(f widget.Form) (vatInput, error) {
			in := vatInput{
				amount: f.Number("amount"),
				rate:   f.Optional("rate", constants.DefaultVATRate),
				mode:   widget.Choice(f, "mode", VATAdd, VATAdd, VATRemove),
			}
			return in, validation.First(
				validation.Positive("amount", "Amount", in.amount),
				validation.PercentRange("rate", "VAT rate", in.rate, 0, 100),
			)
		},
		Compute: func(in vatInput) vatOutput {
			if in.mode == VATRemove {
				net := in.amount / (1 + in.rate/constants.PercentageMultiplier)
				return vatOutput{net: net, vat: in.amount - net, gross: in.amount}
			}
			vat := mathutil.ApplyPercentage(in.amount, in.rate)
			return vatOutput{net: in.amount, vat: vat, gross: in.amount + vat}
		},
		Present: func(f *format.Formatter, in vatInput, out vatOutput) widget.Result {
			var r widget.Result
			r.Headline = "VAT at " + f.Percent(in.rate)
			r.Add("Amount excluding VAT", f.Currency(out.net))
			r.Emphasize("VAT", f.Currency(out.vat))
			r.Add("Amount including VAT", f.Currency(out.gross))
			r.Summary = fmt.Sprintf("VAT on %s is %s.", f.Currency(in.amount), f.Currency(out.vat))
			return r
		},
	}
}

// EBITDAMode selects the starting point for EBITDA.
type EBITDAMode string

// EBITDA modes.
const (
	EBITDAOperating EBITDAMode = "operating"
	EBITDANetIncome EBITDAMode = "net-income"
)

type ebitdaInput struct {
	mode         EBITDAMode
	revenue      float64
	cogs         float64
	opex         float64
	netIncome    float64
	interest     float64
	taxes        float64
	depreciation float64
	amortization float64
}

type ebitdaOutput struct {
	ebit      float64
	ebitda    float64
	margin    float64
	hasMargin bool
}

// EBITDA derives earnings before interest, taxes, depreciation and
// amortization from either operating figures or net income.
func EBITDA() widget.Widget {
	return widget.Definition[ebitdaInput, ebitdaOutput]{
		Meta: widget.Info{
			Slug:        "ebitda",
			Title:       "EBITDA Calculator",
			Category:    widget.CategoryFinance,
			Description: "Earnings before interest, taxes, depreciation and amortization, with margin.",
			Fields: []widget.Field{
				widget.Select("mode", "Start from",
					widget.Option{Value: string(EBITDAOperating), Label: "Revenue and operating costs"},
					widget.Option{Value: string(EBITDANetIncome), Label: "Net income"},
				),
				widget.Money("revenue", "Revenue"),
				widget.Money("cogs", "Cost of goods sold").AsOptional(),
				widget.Money("opex", "Operating expenses").AsOptional(),
				widget.Money("netIncome", "Net income").AsOptional().WithHint("Used when starting from net income."),
				widget.Money("interest", "Interest expense").AsOptional(),
				widget.Money("taxes", "Taxes").AsOptional(),
				widget.Money("depreciation", "Depreciation").AsOptional(),
				widget.Money("amortization", "Amortization").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (ebitdaInput, error) {
			in := ebitdaInput{
				mode:         widget.Choice(f, "mode", EBITDAOperating, EBITDAOperating, EBITDANetIncome),
				revenue:      f.Optional("revenue", 0),
				cogs:         f.Optional("cogs", 0),
				opex:         f.Optional("opex", 0),
				netIncome:    f.Optional("netIncome", 0),
				interest:     f.Optional("interest", 0),
				taxes:        f.Optional("taxes", 0),
				depreciation: f.Optional("depreciation", 0),
				amortization: f.Optional("amortization", 0),
			}
			checks := []error{
				validation.NonNegative("depreciation", "Depreciation", in.depreciation),
				validation.NonNegative("amortization", "Amortization", in.amortization),
			}
			if in.mode == EBITDAOperating {
				checks = append([]error{
					validation.Positive("revenue", "Revenue", in.revenue),
					validation.NonNegative("cogs", "Cost of goods sold", in.cogs),
					validation.NonNegative("opex", "Operating expenses", in.opex),
				}, checks...)
			} else {
				checks = append([]error{
					validation.Finite("netIncome", "Net income", in.netIncome),
					validation.NonNegative("revenue", "Revenue", in.revenue),
					validation.NonNegative("interest", "Interest expense", in.interest),
					validation.NonNegative("taxes", "Taxes", in.taxes),
				}, checks...)
			}
			return in, validation.First(checks...)
		},
		Compute: func(in ebitdaInput) ebitdaOutput {
			var out ebitdaOutput
			if in.mode == EBITDAOperating {
				out.ebit = in.revenue - in.cogs - in.opex
			} else {
				out.ebit = in.netIncome + in.interest + in.taxes
			}
			out.ebitda = out.ebit + in.depreciation + in.amortization
			if in.revenue > 0 {
				out.margin = mathutil.CalculatePercentage(out.ebitda, in.revenue)
				out.hasMargin = true
			}
			return out
		},
		Present: func(f *format.Formatter, _ ebitdaInput, out ebitdaOutput) widget.Result {
			var r widget.Result
			r.Headline = "EBITDA"
			r.Add("EBIT", f.Currency(out.ebit))
			r.Emphasize("EBITDA", f.Currency(out.ebitda))
			if out.hasMargin {
				r.Add("EBITDA margin", format.Fixed(out.margin, 2)+"%")
			} else {
				r.Note("Enter revenue to see the EBITDA margin.")
			}
			r.Summary = "EBITDA: " + f.Currency(out.ebitda)
			return r
		},
	}
}

type marginInput struct {
	revenue float64
	cost    float64
}

type marginOutput struct {
	profit float64
	margin float64
	markup float64
}

// ProfitMargin reports gross profit, margin and markup.
func ProfitMargin() widget.Widget {
	return widget.Definition[marginInput, marginOutput]{
		Meta: widget.Info{
			Slug:        "profit-margin",
			Title:       "Profit Margin Calculator",
			Category:    widget.CategoryFinance,
			Description: "Gross profit, margin and markup from a selling price and cost.",
			Fields: []widget.Field{
				widget.Money("revenue", "Selling price / revenue"),
				widget.Money("cost", "Cost"),
			},
		},
		Gather: func(f widget.Form) (marginInput, error) {
			in := marginInput{revenue: f.Number("revenue"), cost: f.Number("cost")}
			return in, validation.First(
				validation.Positive("revenue", "Revenue", in.revenue),
				validation.Positive("cost", "Cost", in.cost),
			)
		},
		Compute: func(in marginInput) marginOutput {
			profit := in.revenue - in.cost
			return marginOutput{
				profit: profit,
				margin: mathutil.CalculatePercentage(profit, in.revenue),
				markup: mathutil.CalculatePercentage(profit, in.cost),
			}
		},
		Present: func(f *format.Formatter, _ marginInput, out marginOutput) widget.Result {
			var r widget.Result
			r.Headline = "Profit margin"
			r.Add("Gross profit", f.Currency(out.profit))
			r.Emphasize("Profit margin", format.Fixed(out.margin, 2)+"%")
			r.Add("Markup", format.Fixed(out.markup, 2)+"%")
			r.Summary = "Profit margin: " + format.Fixed(out.margin, 2) + "%"
			return r
		},
	}
}

type breakEvenInput struct {
	fixed        float64
	price        float64
	variableCost float64
}

type breakEvenOutput struct {
	units        float64
	revenue      float64
	contribution float64
}

// BreakEven finds the number of units needed to cover fixed costs.
func BreakEven() widget.Widget {
	return widget.Definition[breakEvenInput, breakEvenOutput]{
		Meta: widget.Info{
			Slug:        "break-even",
			Title:       "Break-Even Calculator",
			Category:    widget.CategoryFinance,
			Description: "Units and revenue needed to cover fixed costs.",
			Fields: []widget.Field{
				widget.Money("fixed", "Fixed costs"),
				widget.Money("price", "Price per unit"),
				widget.Money("variable", "Variable cost per unit"),
			},
		},
		Gather: func(f widget.Form) (breakEvenInput, error) {
			in := breakEvenInput{
				fixed:        f.Number("fixed"),
				price:        f.Number("price"),
				variableCost: f.Number("variable"),
			}
			err := validation.First(
				validation.NonNegative("fixed", "Fixed costs", in.fixed),
				validation.Positive("price", "Price per unit", in.price),
				validation.NonNegative("variable", "Variable cost per unit", in.variableCost),
			)
			if err == nil && in.variableCost >= in.price {
				err = validation.Invalid("variable", "Price per unit must be greater than the variable cost per unit.")
			}
			return in, err
		},
		Compute: func(in breakEvenInput) breakEvenOutput {
			contribution := in.price - in.variableCost
			units := math.Ceil(in.fixed/contribution - 1e-9)
			return breakEvenOutput{units: units, revenue: units * in.price, contribution: contribution}
		},
		Present: func(f *format.Formatter, _ breakEvenInput, out breakEvenOutput) widget.Result {
			var r widget.Result
			r.Headline = "Break-even point"
			r.Emphasize("Break-even units", f.Integer(out.units))
			r.Add("Break-even revenue", f.Currency(out.revenue))
			r.Add("Contribution per unit", f.Currency(out.contribution))
			r.Summary = "Break even after " + f.Integer(out.units) + " units."
			return r
		},
	}
}

type roiInput struct {
	invested float64
	returned float64
	years    float64
}

type roiOutput struct {
	gain       float64
	roi        float64
	annualised float64
	hasAnnual  bool
}

// ROI computes return on investment, annualised when a period is given.
func ROI() widget.Widget {
	return widget.Definition[roiInput, roiOutput]{
		Meta: widget.Info{
			Slug:        "roi",
			Title:       "ROI Calculator",
			Category:    widget.CategoryFinance,
			Description: "Return on investment and annualised return.",
			Fields: []widget.Field{
				widget.Money("invested", "Amount invested"),
				widget.Money("returned", "Amount returned"),
				widget.Number("years", "Holding period").WithUnit("years").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (roiInput, error) {
			in := roiInput{
				invested: f.Number("invested"),
				returned: f.Number("returned"),
				years:    f.Optional("years", 0),
			}
			err := validation.First(
				validation.Positive("invested", "Amount invested", in.invested),
				validation.NonNegative("returned", "Amount returned", in.returned),
			)
			if err == nil && f.Present("years") {
				err = validation.Positive("years", "Holding period", in.years)
			}
			return in, err
		},
		Compute: func(in roiInput) roiOutput {
			out := roiOutput{
				gain: in.returned - in.invested,
				roi:  mathutil.PercentChange(in.invested, in.returned),
			}
			if in.years > 0 {
				out.annualised = (math.Pow(in.returned/in.invested, 1/in.years) - 1) * constants.PercentageMultiplier
				out.hasAnnual = true
			}
			return out
		},
		Present: func(f *format.Formatter, _ roiInput, out roiOutput) widget.Result {
			var r widget.Result
			r.Headline = "Return on investment"
			r.Add("Net gain", f.Currency(out.gain))
			r.Emphasize("ROI", f.Percent(out.roi))
			if out.hasAnnual {
				r.Add("Annualised return", f.Percent(out.annualised))
			}
			r.Summary = "ROI: " + f.Percent(out.roi)
			return r
		},
	}
}
