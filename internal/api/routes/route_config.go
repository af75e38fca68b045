package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wastewise/wastewise-backend/internal/api/handlers"
	"github.com/wastewise/wastewise-backend/internal/middleware"
	"github.com/wastewise/wastewise-backend/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FoodHandler         handlers.FoodHandler
	PredictionHandler   handlers.PredictionHandler
	GamificationHandler handlers.GamificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodItems()
	c.Predictions()
	c.Gamification()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UploadAvatar)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)

	// Consumption patterns used by the waste predictor
	foodItems.Get("/patterns", c.FoodHandler.GetConsumptionPatterns)
	foodItems.Put("/patterns", c.FoodHandler.UpsertConsumptionPattern)

	// Basic CRUD operations
	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	// Disposition operations
	foodItems.Post("/:id/consume", c.FoodHandler.ConsumeFoodItem)
	foodItems.Post("/:id/share", c.FoodHandler.ShareFoodItem)
	foodItems.Post("/damaged", c.FoodHandler.MarkAsDamaged)
	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Predictions() {
	predictions := c.App.Group("/api/v1/predictions", c.Middleware.AuthMiddleware(c.JWTService))
	predictions.Get("", c.PredictionHandler.GetPredictions)
	predictions.Post("/digest", c.PredictionHandler.SendExpiryDigest)
}

func (c *Config) Gamification() {
	gamification := c.App.Group("/api/v1/gamification", c.Middleware.AuthMiddleware(c.JWTService))
	gamification.Get("/stats", c.GamificationHandler.GetStats)
	gamification.Post("/points", c.GamificationHandler.AwardPoints)
	gamification.Get("/points/history", c.GamificationHandler.GetPointHistory)
	gamification.Get("/achievements", c.GamificationHandler.GetAchievements)
	gamification.Get("/challenges", c.GamificationHandler.GetChallenges)
	gamification.Post("/challenges/:id/progress", c.GamificationHandler.ProgressChallenge)
	gamification.Get("/leaderboard", c.GamificationHandler.GetLeaderboard)
	gamification.Post("/check-in", c.GamificationHandler.DailyCheckIn)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
