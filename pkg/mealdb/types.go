package mealdb

// RawMeal is a single record as returned by the source API: a flat mapping of
// source-named fields (idMeal, strMeal, strIngredient1..20, ...), any of which
// may be null or absent.
type RawMeal map[string]*string

// Get returns the named field with null and absent both mapped to "".
func (m RawMeal) Get(key string) string {
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

type mealsEnvelope struct {
	Meals []RawMeal `json:"meals"`
}
