// Package catalog holds the static product lists offered during intake.
// Catalog steps are a restricted choice: a customer answer must match one of
// the entries verbatim. The color step is the exception; the palette is only
// a suggestion and any free text is accepted downstream.
package catalog

import "strings"

// Conditions a phone can be ordered in.
var Conditions = []string{"🆕 Brand New", "🇬🇧 UK Used iPhone"}

// Models lists every phone offered, oldest first.
var Models = []string{
	"iPhone 7", "iPhone 7 Plus", "iPhone 8", "iPhone 8 Plus",
	"iPhone X", "iPhone XR", "iPhone XS", "iPhone XS Max",
	"iPhone 11", "iPhone 11 Pro", "iPhone 11 Pro Max",
	"iPhone 12", "iPhone 12 Pro", "iPhone 12 Pro Max",
	"iPhone 13", "iPhone 13 Pro", "iPhone 13 Pro Max",
	"iPhone 14", "iPhone 14 Pro", "iPhone 14 Pro Max",
	"iPhone 15", "iPhone 15 Pro", "iPhone 15 Pro Max",
	"iPhone 16", "iPhone 16 Pro", "iPhone 16 Pro Max",
	"iPhone 17", "iPhone 17 Pro", "iPhone 17 Pro Max",
}

// Storage tiers, offered for every model.
var Storage = []string{"32GB", "64GB", "128GB", "256GB", "512GB", "1TB"}

// BaseColors is the palette suggested for all older models.
var BaseColors = []string{"Black", "White", "Red"}

// LatestColors is the palette suggested for the newest generation tier.
var LatestColors = []string{"Black Titanium", "White Titanium", "Natural Titanium", "Desert Titanium"}

// Keyboard grid widths per step.
const (
	ConditionColumns = 2
	ModelColumns     = 3
	StorageColumns   = 3
	ColorColumns     = 3
)

var latestGenerations = []string{"iPhone 16", "iPhone 17"}

// LatestGeneration reports whether the model belongs to the newest
// generation tier and therefore gets the titanium palette.
func LatestGeneration(model string) bool {
	for _, gen := range latestGenerations {
		if strings.HasPrefix(model, gen) {
			return true
		}
	}
	return false
}

// ColorsFor returns the suggested palette for the given model.
func ColorsFor(model string) []string {
	if LatestGeneration(model) {
		return LatestColors
	}
	return BaseColors
}

// IsCondition reports whether text exactly matches a catalog condition.
func IsCondition(text string) bool { return contains(Conditions, text) }

// IsModel reports whether text exactly matches a catalog model.
func IsModel(text string) bool { return contains(Models, text) }

// IsStorage reports whether text exactly matches a storage tier.
func IsStorage(text string) bool { return contains(Storage, text) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
