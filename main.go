package main

import (
	"context"
	"log"
	"time"

	"survey-engine/internal/config"
	"survey-engine/internal/db"
	"survey-engine/internal/event"
	"survey-engine/internal/handlers"
	"survey-engine/internal/repository"
	"survey-engine/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	env := config.NewEnv()
	if env.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(env.MongoURI)
	defer db.Disconnect()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if env.RabbitURL != "" && env.RabbitExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(env.RabbitURL, env.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, snapshot events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{env.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(env.MongoDatabase)

	// Snapshots
	snapshotRepo := repository.NewSnapshotRepository(database)
	retention := time.Duration(env.RetentionDays) * 24 * time.Hour
	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := snapshotRepo.EnsureIndexes(idxCtx, retention); err != nil {
		log.Printf("Warning: could not ensure snapshot indexes: %v", err)
	}
	idxCancel()
	snapshotService := service.NewSnapshotService(snapshotRepo)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	// Results
	questionnaireService := service.NewQuestionnaireService(env.QuestionnaireDir)
	resultService := service.NewResultService(snapshotService, questionnaireService)
	resultHandler := handlers.NewResultHandler(resultService)

	api := r.Group("/api")
	{
		api.POST("/answers", func(c *gin.Context) {
			snapshotHandler.Save(c)
			if q := c.GetString("questionnaire"); publisher != nil && q != "" {
				publisher.Publish("answers.saved", event.SnapshotEvent{Questionnaire: q})
			}
		})
		api.GET("/answers", snapshotHandler.Load)
		api.DELETE("/answers", func(c *gin.Context) {
			snapshotHandler.Clear(c)
			if publisher != nil && c.Writer.Status() == 200 {
				publisher.Publish("answers.cleared", event.SnapshotEvent{
					Questionnaire: c.Query("questionnaire"),
				})
			}
		})
		api.GET("/results", resultHandler.Results)
	}

	r.Run(":" + env.Port)
}
