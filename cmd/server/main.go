package main

import (
	"context"
	"log"
	"strconv"

	"sakubun/config"
	"sakubun/controllers"
	"sakubun/db"
	"sakubun/internal/cache"
	"sakubun/middlewares"
	"sakubun/routes"
	"sakubun/services"
	"sakubun/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env before the config so env overrides take effect
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Session and quota state live in-process unless a shared cache is
	// configured, in which case they survive restarts and scale across
	// instances.
	var sessions services.KeyedSetStore
	var quota services.QuotaCounter
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(cfg.Redis.Addr, cfg.Redis.Password, 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
		sessions = cache.NewRedisSetStore(rdb)
		quota = cache.NewRedisQuota(rdb, cfg.Practice.DailyLimit)
	} else {
		sessions = services.NewMemorySetStore()
		quota = services.NewQuotaService(cfg.Practice.DailyLimit)
	}

	// A missing API key is a deployment defect, not a call failure: the
	// evaluator stays nil and the endpoint reports it as a server error.
	var gemini *services.GeminiClient
	if cfg.Gemini.ApiKey == "" {
		log.Println("Warning: no Gemini API key configured, evaluation endpoint will be unavailable")
	} else {
		gemini, err = services.NewGeminiClient(context.Background(), cfg.Gemini.ApiKey, cfg.Gemini.Model, cfg.Practice.MaxTokens, cfg.Practice.Temperature)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
	}

	store := db.NewMongoAttemptStore()
	dispatcher := services.NewDispatcher(sessions)
	var evaluator *services.Evaluator
	if gemini != nil {
		evaluator = services.NewEvaluator(gemini)
	} else {
		evaluator = services.NewEvaluator(nil)
	}
	recorder := services.NewRecorder(store)

	practiceController := &controllers.PracticeController{
		Dispatcher: dispatcher,
		Quota:      quota,
		Evaluator:  evaluator,
		Recorder:   recorder,
		Store:      store,
	}
	attemptController := &controllers.AttemptController{Store: store, Quota: quota}
	adminController := &controllers.AdminController{Store: store, Quota: quota, Evaluator: evaluator}
	practiceWS := &websocket.PracticeHandler{
		Dispatcher: dispatcher,
		Quota:      quota,
		Evaluator:  evaluator,
		Recorder:   recorder,
		Store:      store,
	}

	router := setupRouter(cfg, practiceController, attemptController, adminController, practiceWS)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	pc *controllers.PracticeController,
	ac *controllers.AttemptController,
	adc *controllers.AdminController,
	ws *websocket.PracticeHandler,
) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	allowOrigins := cfg.Server.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Id"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	api := router.Group("/api")
	api.Use(middlewares.SessionMiddleware())
	api.Use(middlewares.AuthMiddleware(cfg.Auth.JwtSecret))
	{
		routes.SetupPracticeRoutes(api, pc)
		routes.SetupAttemptRoutes(api, ac)
		routes.SetupAdminRoutes(api, adc)
		api.GET("/ws", ws.Handle)
	}

	return router
}
