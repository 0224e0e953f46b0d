package recommendation

import (
	"context"
	"sort"
	"strings"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/recipe"

	"go.uber.org/zap"
)

type (
	RecommendationService interface {
		SearchAndRecommend(ctx context.Context, query, mode string, limit int, backfill bool) ([]*entities.Recipe, error)
		IngredientBased(ctx context.Context, ingredients []string, limit int) ([]*entities.Recipe, error)
		CategoryBased(ctx context.Context, category string, limit int) ([]*entities.Recipe, error)
		Random(ctx context.Context, limit int) ([]*entities.Recipe, error)
		Trending(ctx context.Context, limit int) ([]*entities.Recipe, error)
		SimilarTo(ctx context.Context, recipeID uint, limit int) ([]*entities.Recipe, error)
		Personalized(ctx context.Context, prefs domain.Preferences, limit int) ([]*entities.Recipe, error)
	}

	recommendationService struct {
		recipeRepository recipe.RecipeRepository
	}
)

func NewRecommendationService(recipeRepository recipe.RecipeRepository) RecommendationService {
	return &recommendationService{recipeRepository: recipeRepository}
}

// SearchAndRecommend runs a store search and, when the match set is short and
// backfill is allowed, pads it with recent recipes not already present.
// Matches come first in store order, backfill after, capped at limit.
func (s *recommendationService) SearchAndRecommend(ctx context.Context, query, mode string, limit int, backfill bool) ([]*entities.Recipe, error) {
	results, err := s.recipeRepository.Search(ctx, query, mode)
	if err != nil {
		return nil, err
	}

	if len(results) < limit && backfill {
		fill, err := s.recipeRepository.RandomSample(ctx, limit-len(results))
		if err != nil {
			return nil, err
		}

		seen := make(map[uint]struct{}, len(results))
		for _, r := range results {
			seen[r.ID] = struct{}{}
		}
		for _, r := range fill {
			if _, ok := seen[r.ID]; !ok {
				results = append(results, r)
			}
		}
	}

	return truncate(results, limit), nil
}

// IngredientBased unions the matches for every query ingredient, scores each
// candidate by how many query ingredients it satisfies, and ranks descending.
// Ties keep first-seen order.
func (s *recommendationService) IngredientBased(ctx context.Context, ingredients []string, limit int) ([]*entities.Recipe, error) {
	seen := make(map[uint]struct{})
	var candidates []*entities.Recipe

	for _, ingredient := range ingredients {
		matches, err := s.recipeRepository.Search(ctx, ingredient, domain.SearchModeIngredient)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m.ID]; !ok {
				seen[m.ID] = struct{}{}
				candidates = append(candidates, m)
			}
		}
	}

	type scored struct {
		recipe  *entities.Recipe
		matches int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, scored{
			recipe:  candidate,
			matches: countIngredientMatches(ingredients, candidate.Ingredients),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].matches > ranked[j].matches
	})

	results := make([]*entities.Recipe, 0, len(ranked))
	for _, entry := range ranked {
		results = append(results, entry.recipe)
	}
	return truncate(results, limit), nil
}

func (s *recommendationService) CategoryBased(ctx context.Context, category string, limit int) ([]*entities.Recipe, error) {
	return s.SearchAndRecommend(ctx, category, domain.SearchModeCategory, limit, false)
}

func (s *recommendationService) Random(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	return s.recipeRepository.RandomSample(ctx, limit)
}

func (s *recommendationService) Trending(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	return s.recipeRepository.Trending(ctx, limit)
}

// SimilarTo ranks every recipe sharing a category or area with the reference:
// +2 for an exact category match, +1 for area, +0.5 per shared ingredient
// (case-sensitive as stored). The reference itself is never a candidate.
func (s *recommendationService) SimilarTo(ctx context.Context, recipeID uint, limit int) ([]*entities.Recipe, error) {
	reference, err := s.recipeRepository.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if reference == nil {
		return nil, domain.ErrRecipeNotFound
	}

	candidates, err := s.recipeRepository.FindSimilarCandidates(ctx, reference.Category, reference.Area, reference.ID)
	if err != nil {
		return nil, err
	}

	refIngredients := make(map[string]struct{}, len(reference.Ingredients))
	for _, ingredient := range reference.Ingredients {
		refIngredients[ingredient] = struct{}{}
	}

	type scored struct {
		recipe *entities.Recipe
		score  float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		var score float64
		if candidate.Category == reference.Category {
			score += 2
		}
		if candidate.Area == reference.Area {
			score += 1
		}
		for _, ingredient := range candidate.Ingredients {
			if _, ok := refIngredients[ingredient]; ok {
				score += 0.5
			}
		}
		ranked = append(ranked, scored{recipe: candidate, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	results := make([]*entities.Recipe, 0, len(ranked))
	for _, entry := range ranked {
		results = append(results, entry.recipe)
	}
	return truncate(results, limit), nil
}

// Personalized takes 2 picks per preferred category and 3 over the whole
// preferred-ingredient list, dedups by id (first occurrence wins), then pads
// with recent recipes until limit or the store runs out.
func (s *recommendationService) Personalized(ctx context.Context, prefs domain.Preferences, limit int) ([]*entities.Recipe, error) {
	var picks []*entities.Recipe

	for _, category := range prefs.Categories {
		categoryPicks, err := s.CategoryBased(ctx, category, 2)
		if err != nil {
			return nil, err
		}
		picks = append(picks, categoryPicks...)
	}

	if len(prefs.Ingredients) > 0 {
		ingredientPicks, err := s.IngredientBased(ctx, prefs.Ingredients, 3)
		if err != nil {
			return nil, err
		}
		picks = append(picks, ingredientPicks...)
	}

	seen := make(map[uint]struct{}, len(picks))
	unique := make([]*entities.Recipe, 0, len(picks))
	for _, pick := range picks {
		if _, ok := seen[pick.ID]; !ok {
			seen[pick.ID] = struct{}{}
			unique = append(unique, pick)
		}
	}

	if len(unique) < limit {
		fill, err := s.recipeRepository.RandomSample(ctx, limit-len(unique))
		if err != nil {
			return nil, err
		}
		for _, r := range fill {
			if _, ok := seen[r.ID]; !ok {
				seen[r.ID] = struct{}{}
				unique = append(unique, r)
			}
		}
	}

	utils.Logger.Debug("personalized recommendations",
		zap.Int("categories", len(prefs.Categories)),
		zap.Int("ingredients", len(prefs.Ingredients)),
		zap.Int("results", len(unique)),
	)

	return truncate(unique, limit), nil
}

// countIngredientMatches counts how many query ingredients are satisfied by at
// least one of the candidate's own ingredients (case-insensitive substring).
func countIngredientMatches(query []string, candidate entities.StringList) int {
	var matches int
	for _, q := range query {
		q = strings.ToLower(q)
		for _, ingredient := range candidate {
			if strings.Contains(strings.ToLower(ingredient), q) {
				matches++
				break
			}
		}
	}
	return matches
}

func truncate(recipes []*entities.Recipe, limit int) []*entities.Recipe {
	if limit >= 0 && len(recipes) > limit {
		return recipes[:limit]
	}
	return recipes
}
