package domain

import (
	"errors"
	"strings"
	"time"
)

// Search modes accepted by the store and the recommendation engine. Anything
// else falls back to SearchModeAll.
const (
	SearchModeAll         = "all"
	SearchModeName        = "name"
	SearchModeFirstLetter = "first_letter"
	SearchModeIngredient  = "ingredient"
	SearchModeCategory    = "category"
	SearchModeArea        = "area"
)

var (
	MessageSuccessSearchRecipes   = "success search recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetSimilar      = "success get similar recipes"
	MessageSuccessGetTrending     = "success get trending recipes"
	MessageSuccessGetRandom       = "success get random recipes"
	MessageSuccessGetRecommended  = "success get recommendations"
	MessageSuccessGetCategories   = "success get categories"
	MessageSuccessGetIngredients  = "success get ingredients"
	MessageSuccessGetStats        = "success get store stats"

	MessageFailedSearchRecipes   = "failed to search recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetSimilar      = "failed to get similar recipes"
	MessageFailedGetRecommended  = "failed to get recommendations"
	MessageFailedGetCategories   = "failed to get categories"
	MessageFailedGetIngredients  = "failed to get ingredients"
	MessageFailedGetStats        = "failed to get store stats"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrDuplicateRecipe = errors.New("recipe already exists")
	ErrMissingQuery    = errors.New("search query is required")
)

type (
	PersonalizedRequest struct {
		Categories  []string `json:"categories"`
		Ingredients []string `json:"ingredients"`
		Limit       int      `json:"limit" validate:"omitempty,min=1,max=50"`
	}

	IngredientRecommendationRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
		Limit       int      `json:"limit" validate:"omitempty,min=1,max=50"`
	}

	Preferences struct {
		Categories  []string
		Ingredients []string
	}

	RecipeResponse struct {
		ID          uint      `json:"id"`
		MealID      string    `json:"meal_id"`
		Name        string    `json:"name"`
		Category    string    `json:"category"`
		Area        string    `json:"area"`
		ImageURL    string    `json:"image_url,omitempty"`
		Tags        []string  `json:"tags,omitempty"`
		Ingredients []string  `json:"ingredients"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		RecipeResponse
		VideoURL string   `json:"video_url,omitempty"`
		Measures []string `json:"measures"`
		Steps    []string `json:"steps"`
	}

	StoreStats struct {
		TotalRecipes    int64 `json:"total_recipes"`
		TotalCategories int   `json:"total_categories"`
	}
)

// SplitInstructions breaks raw instruction text into discrete steps. Step
// boundaries in the source data are CRLF sequences; blank lines are dropped.
func SplitInstructions(instructions string) []string {
	steps := make([]string, 0)
	for _, line := range strings.Split(instructions, "\r\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
