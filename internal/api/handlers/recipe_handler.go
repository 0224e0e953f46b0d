package handlers

import (
	"errors"
	"strconv"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/recommendation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const defaultLimit = 6

type (
	RecipeHandler interface {
		SearchRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetSimilarRecipes(c *fiber.Ctx) error
		GetTrendingRecipes(c *fiber.Ctx) error
		GetRandomRecipes(c *fiber.Ctx) error
		GetPersonalizedRecommendations(c *fiber.Ctx) error
		GetIngredientRecommendations(c *fiber.Ctx) error
		GetCategories(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService         recipe.RecipeService
		recommendationService recommendation.RecommendationService
		validator             *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	recommendationService recommendation.RecommendationService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:         recipeService,
		recommendationService: recommendationService,
		validator:             validator,
	}
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, domain.ErrMissingQuery)
	}

	mode := c.Query("mode", domain.SearchModeAll)
	limit := parseLimit(c.Query("limit"))
	backfill := c.QueryBool("backfill", true)

	recipes, err := h.recommendationService.SearchAndRecommend(c.Context(), query, mode, limit, backfill)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	detail, err := h.recipeService.GetRecipeDetail(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, detail, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetSimilarRecipes(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSimilar, domain.ErrRecipeNotFound)
	}

	limit := parseLimit(c.Query("limit"))
	recipes, err := h.recommendationService.SimilarTo(c.Context(), uint(id), limit)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetSimilar, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSimilar, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessGetSimilar)
}

func (h *recipeHandler) GetTrendingRecipes(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"))

	recipes, err := h.recommendationService.Trending(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommended, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessGetTrending)
}

func (h *recipeHandler) GetRandomRecipes(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"))

	recipes, err := h.recommendationService.Random(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommended, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessGetRandom)
}

func (h *recipeHandler) GetPersonalizedRecommendations(c *fiber.Ctx) error {
	req := new(domain.PersonalizedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecommended, err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	recipes, err := h.recommendationService.Personalized(c.Context(), domain.Preferences{
		Categories:  req.Categories,
		Ingredients: req.Ingredients,
	}, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommended, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessGetRecommended)
}

func (h *recipeHandler) GetIngredientRecommendations(c *fiber.Ctx) error {
	req := new(domain.IngredientRecommendationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecommended, err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	recipes, err := h.recommendationService.IngredientBased(c.Context(), req.Ingredients, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommended, err)
	}

	return presenters.SuccessResponse(c, toRecipeResponses(recipes), fiber.StatusOK, domain.MessageSuccessGetRecommended)
}

func (h *recipeHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.recipeService.GetCategories(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetCategories, err)
	}

	return presenters.SuccessResponse(c, categories, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *recipeHandler) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := h.recipeService.GetIngredients(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, ingredients, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *recipeHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.recipeService.GetStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > 50 {
		return 50
	}
	return limit
}

func toRecipeResponses(recipes []*entities.Recipe) []domain.RecipeResponse {
	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		responses = append(responses, recipe.ToRecipeResponse(r))
	}
	return responses
}
