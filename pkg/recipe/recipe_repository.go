package recipe

import (
	"context"
	"errors"
	"sort"

	"recipe-hub/domain"
	"recipe-hub/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		Create(ctx context.Context, recipe *entities.Recipe) error
		FindByID(ctx context.Context, id uint) (*entities.Recipe, error)
		FindByMealID(ctx context.Context, mealID string) (*entities.Recipe, error)
		Search(ctx context.Context, query, mode string) ([]*entities.Recipe, error)
		RandomSample(ctx context.Context, n int) ([]*entities.Recipe, error)
		Trending(ctx context.Context, n int) ([]*entities.Recipe, error)
		FindSimilarCandidates(ctx context.Context, category, area string, excludeID uint) ([]*entities.Recipe, error)
		Count(ctx context.Context) (int64, error)
		DistinctCategories(ctx context.Context) ([]string, error)
		DistinctIngredients(ctx context.Context) ([]string, error)
		Transaction(ctx context.Context, fn func(tx RecipeRepository) error) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateRecipe
		}
		return err
	}
	return nil
}

func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindByMealID(ctx context.Context, mealID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("meal_id = ?", mealID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// Search runs a case-insensitive substring match for the given mode. Unknown
// modes fall back to a disjunction over name, category, area and ingredients.
// Ingredient matching runs against the serialized ingredient list column.
func (r *recipeRepository) Search(ctx context.Context, query, mode string) ([]*entities.Recipe, error) {
	like := "%" + query + "%"

	q := r.db.WithContext(ctx).Model(&entities.Recipe{})
	switch mode {
	case domain.SearchModeName:
		q = q.Where("name ILIKE ?", like)
	case domain.SearchModeFirstLetter:
		q = q.Where("name ILIKE ?", query+"%")
	case domain.SearchModeCategory:
		q = q.Where("category ILIKE ?", like)
	case domain.SearchModeArea:
		q = q.Where("area ILIKE ?", like)
	case domain.SearchModeIngredient:
		q = q.Where("ingredients ILIKE ?", like)
	default:
		q = q.Where(
			"name ILIKE ? OR category ILIKE ? OR area ILIKE ? OR ingredients ILIKE ?",
			like, like, like, like,
		)
	}

	var recipes []*entities.Recipe
	if err := q.Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RandomSample returns the n most recently inserted recipes, not a uniform
// random draw. Callers (backfill, personalized padding) rely on recency to
// keep fill results fresh as the corpus grows.
func (r *recipeRepository) RandomSample(ctx context.Context, n int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(n).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Trending(ctx context.Context, n int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(n).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) FindSimilarCandidates(ctx context.Context, category, area string, excludeID uint) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("(category = ? OR area = ?) AND id <> ?", category, area, excludeID).
		Order("id").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Distinct().
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DistinctIngredients unions the ingredient lists of every recipe in Go since
// the lists are stored serialized; output is sorted, case preserved.
func (r *recipeRepository) DistinctIngredients(ctx context.Context) ([]string, error) {
	var rows []entities.Recipe
	if err := r.db.WithContext(ctx).Select("ingredients").Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, ingredient := range row.Ingredients {
			seen[ingredient] = struct{}{}
		}
	}

	ingredients := make([]string, 0, len(seen))
	for ingredient := range seen {
		ingredients = append(ingredients, ingredient)
	}
	sort.Strings(ingredients)
	return ingredients, nil
}

// Transaction runs fn against a repository bound to a single transaction.
// An error return rolls back everything fn inserted.
func (r *recipeRepository) Transaction(ctx context.Context, fn func(tx RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}
