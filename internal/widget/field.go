package widget

// Kind is the HTML input a Field renders as.
type Kind string

// Field kinds.
const (
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindDate     Kind = "date"
	KindList     Kind = "list"
)

// Option is one entry of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input of a calculator.
type Field struct {
	Name         string
	Label        string
	Kind         Kind
	Unit         string
	Hint         string
	DefaultValue string
	Optional     bool
	// LiveFormat groups digits while the user types.
	LiveFormat bool
	Options    []Option
}

// Number declares a numeric input.
func Number(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindNumber}
}

// Money declares a numeric input that is digit-grouped while typing.
func Money(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindNumber, LiveFormat: true}
}

// Date declares a YYYY-MM-DD date input.
func Date(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindDate}
}

// Checkbox declares a boolean input.
func Checkbox(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindCheckbox}
}

// List declares a free-text list, one value per line or comma separated.
func List(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindList}
}

// Select declares a dropdown. The first option is the default.
func Select(name, label string, options ...Option) Field {
	f := Field{Name: name, Label: label, Kind: KindSelect, Options: options}
	if len(options) > 0 {
		f.DefaultValue = options[0].Value
	}
	return f
}

// WithDefault returns f with a prefilled default value.
func (f Field) WithDefault(value string) Field {
	f.DefaultValue = value
	return f
}

// WithUnit returns f with a unit suffix such as "%" or "m²".
func (f Field) WithUnit(unit string) Field {
	f.Unit = unit
	return f
}

// WithHint returns f with help text.
func (f Field) WithHint(hint string) Field {
	f.Hint = hint
	return f
}

// AsOptional marks f as optional; blank input falls back to the calculator's default.
func (f Field) AsOptional() Field {
	f.Optional = true
	return f
}
