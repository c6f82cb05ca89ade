package config

import (
	"log"
	"os"
	"strconv"
)

// Env holds the storage service process configuration.
type Env struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	RabbitURL        string
	RabbitExchange   string
	QuestionnaireDir string
	RetentionDays    int
	AllowedOrigins   string
}

func NewEnv() *Env {
	retentionStr := getEnv("SNAPSHOT_RETENTION_DAYS", "30")
	retention, err := strconv.Atoi(retentionStr)
	if err != nil || retention <= 0 {
		log.Printf("Invalid SNAPSHOT_RETENTION_DAYS %q, using 30", retentionStr)
		retention = 30
	}

	return &Env{
		Port:             getEnv("PORT", "6677"),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("SURVEY_MONGO_DB", "survey_engine"),
		RabbitURL:        getEnv("RABBITMQ_URI", ""),
		RabbitExchange:   getEnv("RABBITMQ_EXCHANGE", ""),
		QuestionnaireDir: getEnv("QUESTIONNAIRE_DIR", "questionnaires"),
		RetentionDays:    retention,
		AllowedOrigins:   getEnv("FE_ADDR", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
