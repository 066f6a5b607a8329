package widget

import (
	"fmt"
	"sort"
)

// Registry is the ordered catalogue of calculators keyed by slug.
type Registry struct {
	order  []Widget
	bySlug map[string]Widget
}

// CategoryGroup is the set of calculators shown under one heading.
type CategoryGroup struct {
	Category Category
	Widgets  []Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySlug: make(map[string]Widget)}
}

// Register adds widgets, rejecting empty or duplicate slugs.
func (r *Registry) Register(widgets ...Widget) error {
	for _, w := range widgets {
		slug := w.Info().Slug
		if slug == "" {
			return fmt.Errorf("calculator %q has no slug", w.Info().Title)
		}
		if _, exists := r.bySlug[slug]; exists {
			return fmt.Errorf("calculator %q registered twice", slug)
		}
		r.bySlug[slug] = w
		r.order = append(r.order, w)
	}
	return nil
}

// Get looks a calculator up by slug.
func (r *Registry) Get(slug string) (Widget, bool) {
	w, ok := r.bySlug[slug]
	return w, ok
}

// All returns calculators in registration order.
func (r *Registry) All() []Widget {
	return append([]Widget(nil), r.order...)
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	return len(r.order)
}

// Categories groups calculators by category in CategoryOrder, titles sorted
// within each group. Empty categories are omitted.
func (r *Registry) Categories() []CategoryGroup {
	grouped := make(map[Category][]Widget)
	for _, w := range r.order {
		c := w.Info().Category
		grouped[c] = append(grouped[c], w)
	}

	var groups []CategoryGroup
	for _, c := range CategoryOrder {
		widgets := grouped[c]
		if len(widgets) == 0 {
			continue
		}
		sort.SliceStable(widgets, func(i, j int) bool {
			return widgets[i].Info().Title < widgets[j].Info().Title
		})
		groups = append(groups, CategoryGroup{Category: c, Widgets: widgets})
	}
	return groups
}
