package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/wastewise/wastewise-backend/internal/api/handlers"
	"github.com/wastewise/wastewise-backend/internal/api/routes"
	"github.com/wastewise/wastewise-backend/internal/middleware"
	"github.com/wastewise/wastewise-backend/internal/utils"
	"github.com/wastewise/wastewise-backend/internal/utils/storage"
	"github.com/wastewise/wastewise-backend/pkg/food"
	"github.com/wastewise/wastewise-backend/pkg/gamification"
	"github.com/wastewise/wastewise-backend/pkg/jwt"
	"github.com/wastewise/wastewise-backend/pkg/prediction"
	"github.com/wastewise/wastewise-backend/pkg/user"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	gamificationRepository := gamification.NewGamificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	engine := gamification.NewDefaultEngine()
	gamificationService := gamification.NewGamificationService(gamificationRepository, engine, time.Now)
	foodService := food.NewFoodService(foodRepository, gamificationService, s3, time.Now)
	predictor := prediction.NewPredictor(time.Now)
	predictionService := prediction.NewPredictionService(predictor, foodRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		FoodHandler:         foodHandler,
		PredictionHandler:   predictionHandler,
		GamificationHandler: gamificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
