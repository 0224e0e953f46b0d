package recipe

import (
	"context"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

type (
	RecipeService interface {
		GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error)
		GetCategories(ctx context.Context) ([]string, error)
		GetIngredients(ctx context.Context) ([]string, error)
		GetStats(ctx context.Context) (domain.StoreStats, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{recipeRepository: recipeRepository}
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.FindByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if recipe == nil {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	return domain.RecipeDetail{
		RecipeResponse: ToRecipeResponse(recipe),
		VideoURL:       recipe.VideoURL,
		Measures:       recipe.Measures,
		Steps:          domain.SplitInstructions(recipe.Instructions),
	}, nil
}

func (s *recipeService) GetCategories(ctx context.Context) ([]string, error) {
	return s.recipeRepository.DistinctCategories(ctx)
}

func (s *recipeService) GetIngredients(ctx context.Context) ([]string, error) {
	return s.recipeRepository.DistinctIngredients(ctx)
}

func (s *recipeService) GetStats(ctx context.Context) (domain.StoreStats, error) {
	count, err := s.recipeRepository.Count(ctx)
	if err != nil {
		return domain.StoreStats{}, err
	}

	categories, err := s.recipeRepository.DistinctCategories(ctx)
	if err != nil {
		return domain.StoreStats{}, err
	}

	return domain.StoreStats{
		TotalRecipes:    count,
		TotalCategories: len(categories),
	}, nil
}

// ToRecipeResponse maps a stored recipe onto its list representation.
func ToRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:          recipe.ID,
		MealID:      recipe.MealID,
		Name:        recipe.Name,
		Category:    recipe.Category,
		Area:        recipe.Area,
		ImageURL:    recipe.ImageURL,
		Tags:        recipe.Tags,
		Ingredients: recipe.Ingredients,
		CreatedAt:   recipe.CreatedAt,
	}
}
