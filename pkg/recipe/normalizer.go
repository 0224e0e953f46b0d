package recipe

import (
	"fmt"
	"strings"

	"recipe-hub/entities"
	"recipe-hub/pkg/mealdb"
)

// The source exposes at most 20 indexed ingredient/measure slot pairs.
const maxIngredientSlots = 20

// Normalize converts a raw source record into a Recipe ready for insertion.
// It never fails: missing or null fields become empty strings, and the
// resulting Ingredients and Measures are always the same length.
func Normalize(raw mealdb.RawMeal) entities.Recipe {
	ingredients := make(entities.StringList, 0, maxIngredientSlots)
	measures := make(entities.StringList, 0, maxIngredientSlots)

	for i := 1; i <= maxIngredientSlots; i++ {
		ingredient := strings.TrimSpace(raw.Get(fmt.Sprintf("strIngredient%d", i)))
		measure := strings.TrimSpace(raw.Get(fmt.Sprintf("strMeasure%d", i)))

		// An empty or "null" ingredient drops the whole slot, measure included.
		if isNullValue(ingredient) {
			continue
		}
		if isNullValue(measure) {
			measure = ""
		}

		ingredients = append(ingredients, ingredient)
		measures = append(measures, measure)
	}

	tags := make(entities.StringList, 0)
	for _, tag := range strings.Split(raw.Get("strTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return entities.Recipe{
		MealID:       raw.Get("idMeal"),
		Name:         raw.Get("strMeal"),
		Category:     raw.Get("strCategory"),
		Area:         raw.Get("strArea"),
		Instructions: raw.Get("strInstructions"),
		ImageURL:     raw.Get("strMealThumb"),
		VideoURL:     raw.Get("strYoutube"),
		Ingredients:  ingredients,
		Measures:     measures,
		Tags:         tags,
	}
}

func isNullValue(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}
