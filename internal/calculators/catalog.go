// Package calculators assembles every calculator into one registry.
package calculators

import (
	"fmt"
	"time"

	"github.com/iwvelando/calc-widgets/internal/calculators/construction"
	"github.com/iwvelando/calc-widgets/internal/calculators/conversion"
	"github.com/iwvelando/calc-widgets/internal/calculators/dates"
	"github.com/iwvelando/calc-widgets/internal/calculators/engineering"
	"github.com/iwvelando/calc-widgets/internal/calculators/finance"
	"github.com/iwvelando/calc-widgets/internal/calculators/health"
	"github.com/iwvelando/calc-widgets/internal/calculators/maths"
	"github.com/iwvelando/calc-widgets/internal/widget"
)

// NewRegistry registers the full catalogue. clock supplies "today" to the
// date calculators; nil means time.Now.
func NewRegistry(clock dates.Clock) (*widget.Registry, error) {
	if clock == nil {
		clock = time.Now
	}

	reg := widget.NewRegistry()
	groups := [][]widget.Widget{
		finance.All(),
		maths.All(),
		dates.All(clock),
		conversion.All(),
		construction.All(),
		engineering.All(),
		health.All(),
	}
	for _, group := range groups {
		if err := reg.Register(group...); err != nil {
			return nil, fmt.Errorf("failed to build calculator registry: %w", err)
		}
	}
	return reg, nil
}
