// Package health holds body-measurement calculators. Results are estimates
// and carry a note saying so.
package health

import (
	"fmt"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

const disclaimer = "This is a general estimate, not medical advice."

// All returns every health calculator.
func All() []widget.Widget {
	return []widget.Widget{BMI(), BMR(), WaterIntake()}
}

type bodyInput struct {
	weightKg float64
	heightCm float64
}

// BMI computes body mass index and its WHO category.
func BMI() widget.Widget {
	return widget.Definition[bodyInput, float64]{
		Meta: widget.Info{
			Slug:        "bmi",
			Title:       "BMI Calculator",
			Category:    widget.CategoryHealth,
			Description: "Body mass index from weight and height.",
			Fields: []widget.Field{
				widget.Number("weight", "Weight").WithUnit("kg"),
				widget.Number("height", "Height").WithUnit("cm"),
			},
		},
		Gather: func(f widget.Form) (bodyInput, error) {
			in := bodyInput{weightKg: f.Number("weight"), heightCm: f.Number("height")}
			return in, validation.First(
				validation.Positive("weight", "Weight", in.weightKg),
				validation.Positive("height", "Height", in.heightCm),
			)
		},
		Compute: func(in bodyInput) float64 {
			m := in.heightCm / 100
			return in.weightKg / (m * m)
		},
		Present: func(f *format.Formatter, _ bodyInput, bmi float64) widget.Result {
			var r widget.Result
			r.Headline = "Body mass index"
			r.Emphasize("BMI", f.Decimals(bmi, 1))
			r.Add("Category", BMICategory(bmi))
			r.Note(disclaimer)
			r.Summary = fmt.Sprintf("My BMI is %s (%s).", f.Decimals(bmi, 1), BMICategory(bmi))
			return r
		},
	}
}

// BMICategory returns the WHO adult weight category for bmi.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Sex selects the BMR equation constant.
type Sex string

// Sexes.
const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Activity is a physical activity level.
type Activity string

// Activity levels.
const (
	Sedentary   Activity = "sedentary"
	Light       Activity = "light"
	Moderate    Activity = "moderate"
	Active      Activity = "active"
	ExtraActive Activity = "extra"
)

// Multiplier returns the total daily energy multiplier for a.
func (a Activity) Multiplier() float64 {
	switch a {
	case Light:
		return 1.375
	case Moderate:
		return 1.55
	case Active:
		return 1.725
	case ExtraActive:
		return 1.9
	default:
		return 1.2
	}
}

type bmrInput struct {
	sex      Sex
	age      float64
	body     bodyInput
	activity Activity
}

type bmrOutput struct {
	bmr   float64
	daily float64
}

// BMR estimates basal metabolic rate with the Mifflin-St Jeor equation.
func BMR() widget.Widget {
	return widget.Definition[bmrInput, bmrOutput]{
		Meta: widget.Info{
			Slug:        "bmr",
			Title:       "BMR Calculator",
			Category:    widget.CategoryHealth,
			Description: "Basal metabolic rate and daily calorie needs.",
			Fields: []widget.Field{
				widget.Select("sex", "Sex",
					widget.Option{Value: string(Male), Label: "Male"},
					widget.Option{Value: string(Female), Label: "Female"},
				),
				widget.Number("age", "Age").WithUnit("years"),
				widget.Number("weight", "Weight").WithUnit("kg"),
				widget.Number("height", "Height").WithUnit("cm"),
				widget.Select("activity", "Activity level",
					widget.Option{Value: string(Sedentary), Label: "Sedentary (little or no exercise)"},
					widget.Option{Value: string(Light), Label: "Light (1-3 days a week)"},
					widget.Option{Value: string(Moderate), Label: "Moderate (3-5 days a week)"},
					widget.Option{Value: string(Active), Label: "Active (6-7 days a week)"},
					widget.Option{Value: string(ExtraActive), Label: "Extra active (physical job)"},
				),
			},
		},
		Gather: func(f widget.Form) (bmrInput, error) {
			in := bmrInput{
				sex:      widget.Choice(f, "sex", Male, Male, Female),
				age:      f.Number("age"),
				body:     bodyInput{weightKg: f.Number("weight"), heightCm: f.Number("height")},
				activity: widget.Choice(f, "activity", Sedentary, Sedentary, Light, Moderate, Active, ExtraActive),
			}
			return in, validation.First(
				validation.Range("age", "Age", in.age, 1, 120),
				validation.Positive("weight", "Weight", in.body.weightKg),
				validation.Positive("height", "Height", in.body.heightCm),
			)
		},
		Compute: func(in bmrInput) bmrOutput {
			bmr := 10*in.body.weightKg + 6.25*in.body.heightCm - 5*in.age
			if in.sex == Female {
				bmr -= 161
			} else {
				bmr += 5
			}
			return bmrOutput{bmr: bmr, daily: bmr * in.activity.Multiplier()}
		},
		Present: func(f *format.Formatter, _ bmrInput, out bmrOutput) widget.Result {
			var r widget.Result
			r.Headline = "Basal metabolic rate"
			r.Emphasize("BMR", f.Integer(out.bmr)+" kcal/day")
			r.Add("Daily calories", f.Integer(out.daily)+" kcal/day")
			r.Note(disclaimer)
			r.Summary = "My BMR is " + f.Integer(out.bmr) + " kcal/day."
			return r
		},
	}
}

const (
	millilitresPerKg            = 35.0
	millilitresPer30MinExercise = 350.0
)

type waterInput struct {
	weightKg float64
	exercise float64
}

// WaterIntake suggests daily water from body weight and exercise.
func WaterIntake() widget.Widget {
	return widget.Definition[waterInput, float64]{
		Meta: widget.Info{
			Slug:        "water-intake",
			Title:       "Water Intake Calculator",
			Category:    widget.CategoryHealth,
			Description: "Suggested daily water intake.",
			Fields: []widget.Field{
				widget.Number("weight", "Weight").WithUnit("kg"),
				widget.Number("exercise", "Exercise per day").WithUnit("minutes").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (waterInput, error) {
			in := waterInput{weightKg: f.Number("weight"), exercise: f.Optional("exercise", 0)}
			return in, validation.First(
				validation.Positive("weight", "Weight", in.weightKg),
				validation.NonNegative("exercise", "Exercise", in.exercise),
			)
		},
		Compute: func(in waterInput) float64 {
			ml := in.weightKg*millilitresPerKg + in.exercise/30*millilitresPer30MinExercise
			return ml / 1000
		},
		Present: func(f *format.Formatter, _ waterInput, litres float64) widget.Result {
			var r widget.Result
			r.Headline = "Daily water intake"
			r.Emphasize("Water per day", f.TwoDecimals(litres)+" L")
			r.Add("Glasses (250 ml)", f.Integer(litres*4))
			r.Note(disclaimer)
			r.Summary = "I should drink about " + f.TwoDecimals(litres) + " L of water a day."
			return r
		},
	}
}
