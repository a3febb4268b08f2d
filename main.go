package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"assessment-service/internal/adaptive"
	"assessment-service/internal/bank"
	"assessment-service/internal/config"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/service"
	"assessment-service/internal/store"
	"assessment-service/internal/summary"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	ctx := context.Background()

	questionBank := loadBank(ctx, cfg)
	logBankCounts(questionBank)

	sessionStore := newStore(ctx, cfg)

	var publisher *event.Publisher
	if cfg.RabbitURI != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitURI, cfg.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, lifecycle events will not be published")
	}

	summaries, err := summary.NewGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize summary generator: %v", err)
	}

	assessmentService := service.NewAssessmentService(adaptive.NewAdjuster(nil))
	resultService := service.NewResultService()
	statsService := service.NewStatsService()

	assessmentHandler := handlers.NewAssessmentHandler(
		assessmentService,
		resultService,
		statsService,
		questionBank,
		sessionStore,
		summaries,
		publisher,
	)
	statsHandler := handlers.NewStatsHandler(statsService, sessionStore)
	bankHandler := handlers.NewBankHandler(questionBank)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-User-ID", "accept", "origin", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/health", handlers.Health)
	r.GET("/api/questions/counts", bankHandler.Counts)

	api := r.Group("/api", handlers.RequireActor())
	{
		api.POST("/assessment", assessmentHandler.Create)
		api.GET("/assessment/next", assessmentHandler.Next)
		api.POST("/assessment/answer", assessmentHandler.Answer)
		api.GET("/assessment/score", assessmentHandler.Score)
		api.GET("/assessment/results", assessmentHandler.FinalResults)

		api.GET("/stats", statsHandler.GetStats)
		api.GET("/badges", statsHandler.GetBadges)
		api.POST("/session/clear", statsHandler.ClearSession)

		api.POST("/questions/reset", bankHandler.ResetUsed)
	}

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadBank builds the question bank from MongoDB when configured, otherwise
// from the questions JSON file.
func loadBank(ctx context.Context, cfg *config.Config) *bank.QuestionBank {
	if cfg.MongoURI != "" {
		client, err := repository.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		repo := repository.NewBankRepository(client.Database(cfg.MongoDatabase))
		questions, err := repo.LoadAll(ctx)
		if err != nil {
			log.Fatalf("Failed to load question bank from MongoDB: %v", err)
		}
		// The bank is read-only input; disconnect once it is loaded.
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Mongo disconnect: %v", err)
		}
		b, err := bank.New(questions)
		if err != nil {
			log.Fatalf("Invalid question bank: %v", err)
		}
		return b
	}

	b, err := bank.Load(cfg.QuestionsFile)
	if err != nil {
		log.Fatalf("Failed to load question bank from %s: %v", cfg.QuestionsFile, err)
	}
	return b
}

func logBankCounts(b *bank.QuestionBank) {
	counts := b.Counts()
	log.Printf("Loaded %d questions across %d domains", counts.Total, len(counts.ByDomain))
	for domain, dc := range counts.ByDomain {
		log.Printf("  %s: %d (beginner %d, intermediate %d, advanced %d)",
			domain, dc.Total, dc.Beginner, dc.Intermediate, dc.Advanced)
	}
}

func newStore(ctx context.Context, cfg *config.Config) store.Store {
	if cfg.RedisURI == "" {
		log.Println("Redis not configured, using in-memory session store")
		return store.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.RedisURI)
	if err != nil {
		log.Fatalf("Invalid REDIS_URI: %v", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return store.NewRedisStore(client)
}
