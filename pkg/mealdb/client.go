package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-hub/domain"
	"recipe-hub/pkg/cache"

	"github.com/go-resty/resty/v2"
)

const (
	cacheKeyCategories  = "mealdb:categories"
	cacheKeyAreas       = "mealdb:areas"
	cacheKeyIngredients = "mealdb:ingredients"
)

type (
	// Source is the external recipe API. Every method maps transport and
	// payload failures to domain.ErrSourceUnavailable; callers decide whether
	// that means "zero results" or a hard error.
	Source interface {
		RandomMeal(ctx context.Context) (RawMeal, error)
		SearchByName(ctx context.Context, name string) ([]RawMeal, error)
		SearchByFirstLetter(ctx context.Context, letter string) ([]RawMeal, error)
		FilterByIngredient(ctx context.Context, ingredient string) ([]RawMeal, error)
		FilterByCategory(ctx context.Context, category string) ([]RawMeal, error)
		FilterByArea(ctx context.Context, area string) ([]RawMeal, error)
		LookupByID(ctx context.Context, mealID string) (RawMeal, error)
		ListCategories(ctx context.Context) ([]string, error)
		ListAreas(ctx context.Context) ([]string, error)
		ListIngredients(ctx context.Context) ([]string, error)
	}

	client struct {
		http  *resty.Client
		cache *cache.Service
	}
)

func NewClient(baseURL string, cacheService *cache.Service) Source {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second)

	return &client{
		http:  httpClient,
		cache: cacheService,
	}
}

func (c *client) getMeals(ctx context.Context, path string, params map[string]string) ([]RawMeal, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnavailable, resp.StatusCode())
	}

	var envelope mealsEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", domain.ErrSourceUnavailable, err)
	}

	// The source answers "no matches" as {"meals": null}.
	return envelope.Meals, nil
}

func (c *client) RandomMeal(ctx context.Context) (RawMeal, error) {
	meals, err := c.getMeals(ctx, "/random.php", nil)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	return meals[0], nil
}

func (c *client) SearchByName(ctx context.Context, name string) ([]RawMeal, error) {
	return c.getMeals(ctx, "/search.php", map[string]string{"s": name})
}

func (c *client) SearchByFirstLetter(ctx context.Context, letter string) ([]RawMeal, error) {
	return c.getMeals(ctx, "/search.php", map[string]string{"f": letter})
}

func (c *client) FilterByIngredient(ctx context.Context, ingredient string) ([]RawMeal, error) {
	return c.getMeals(ctx, "/filter.php", map[string]string{"i": ingredient})
}

func (c *client) FilterByCategory(ctx context.Context, category string) ([]RawMeal, error) {
	return c.getMeals(ctx, "/filter.php", map[string]string{"c": category})
}

func (c *client) FilterByArea(ctx context.Context, area string) ([]RawMeal, error) {
	return c.getMeals(ctx, "/filter.php", map[string]string{"a": area})
}

func (c *client) LookupByID(ctx context.Context, mealID string) (RawMeal, error) {
	meals, err := c.getMeals(ctx, "/lookup.php", map[string]string{"i": mealID})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	return meals[0], nil
}

func (c *client) ListCategories(ctx context.Context) ([]string, error) {
	return c.listValues(ctx, cacheKeyCategories, map[string]string{"c": "list"}, "strCategory")
}

func (c *client) ListAreas(ctx context.Context) ([]string, error) {
	return c.listValues(ctx, cacheKeyAreas, map[string]string{"a": "list"}, "strArea")
}

func (c *client) ListIngredients(ctx context.Context) ([]string, error) {
	return c.listValues(ctx, cacheKeyIngredients, map[string]string{"i": "list"}, "strIngredient")
}

// listValues serves the list.php endpoints, caching results since the catalog
// of categories/areas/ingredients changes rarely.
func (c *client) listValues(ctx context.Context, cacheKey string, params map[string]string, field string) ([]string, error) {
	if values, ok := c.cache.GetStrings(ctx, cacheKey); ok {
		return values, nil
	}

	meals, err := c.getMeals(ctx, "/list.php", params)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(meals))
	for _, meal := range meals {
		if v := meal.Get(field); v != "" {
			values = append(values, v)
		}
	}

	c.cache.SetStrings(ctx, cacheKey, values)
	return values, nil
}
