package routes

import (
	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	SyncHandler   handlers.SyncHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Sync()
	c.GuestRoute()
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	// static paths before the :id routes
	{
		recipes.Get("/search", c.RecipeHandler.SearchRecipes)
		recipes.Get("/trending", c.RecipeHandler.GetTrendingRecipes)
		recipes.Get("/random", c.RecipeHandler.GetRandomRecipes)
		recipes.Get("/categories", c.RecipeHandler.GetCategories)
		recipes.Get("/ingredients", c.RecipeHandler.GetIngredients)
		recipes.Get("/stats", c.RecipeHandler.GetStats)
		recipes.Post("/recommendations/personalized", c.RecipeHandler.GetPersonalizedRecommendations)
		recipes.Post("/recommendations/ingredients", c.RecipeHandler.GetIngredientRecommendations)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Get("/:id/similar", c.RecipeHandler.GetSimilarRecipes)
	}
}

func (c *Config) Sync() {
	sync := c.App.Group("/api/v1/sync")
	{
		sync.Post("", c.SyncHandler.TriggerSync)
		sync.Get("/runs", c.SyncHandler.GetSyncRuns)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
