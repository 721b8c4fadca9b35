// Package ui centralises the visual vocabulary shared by every screen:
// one badge variant enum with a single class lookup, instead of color maps
// repeated per component.
package ui

// Variant enumerates badge color variants.
type Variant string

const (
	VariantNeutral Variant = "neutral"
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
)

var variantClasses = map[Variant]string{
	VariantNeutral: "badge badge-neutral",
	VariantInfo:    "badge badge-info",
	VariantSuccess: "badge badge-success",
	VariantWarning: "badge badge-warning",
	VariantDanger:  "badge badge-danger",
}

// Class returns the CSS class list for the variant.
func (v Variant) Class() string {
	if cls, ok := variantClasses[v]; ok {
		return cls
	}
	return variantClasses[VariantNeutral]
}

// Badge pairs a human label with a variant; both the table and the card
// layout of a listing render the same Badge value.
type Badge struct {
	Label   string
	Variant Variant
}

// Class is sugar for templates.
func (b Badge) Class() string {
	return b.Variant.Class()
}
