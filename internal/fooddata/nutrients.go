package fooddata

import "strings"

// CalorieAliases are the lower-cased nutrient names accepted as the energy
// figure. Order does not matter; the nutrient list order does.
var CalorieAliases = []string{"energy", "calories", "energy (kcal)"}

// CaloriesPer100g returns the value of the first nutrient whose name matches
// one of CalorieAliases, case-insensitively. Units are not inspected, so a
// kJ entry named "Energy" listed before the kcal one would win. The search
// stops at the first match: if that entry has no value, there is no figure.
func (f Food) CaloriesPer100g() (float64, bool) {
	for _, n := range f.FoodNutrients {
		if isCalorieAlias(n.NutrientName) {
			if n.Value == nil {
				return 0, false
			}
			return *n.Value, true
		}
	}
	return 0, false
}

func isCalorieAlias(name string) bool {
	lower := strings.ToLower(name)
	for _, alias := range CalorieAliases {
		if lower == alias {
			return true
		}
	}
	return false
}
