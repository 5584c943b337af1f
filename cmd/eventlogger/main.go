// Command eventlogger consumes the task event topic and appends each event
// to a log file. Useful as an audit trail and for watching the producer
// during development.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/taskdash/apigateway/internal/config"
)

func main() {
	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("failed to load env config: %v", err)
	}
	cfg := config.DefaultEnvConfig

	logFile := os.Getenv("EVENT_LOG_FILE")
	if cfg.KAFKA_BROKER == "" || cfg.KAFKA_TOPIC == "" || logFile == "" {
		log.Fatal("KAFKA_BROKER, KAFKA_TOPIC or EVENT_LOG_FILE is not configured")
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println("Task event logger started")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KAFKA_BROKER},
		Topic:   cfg.KAFKA_TOPIC,
		GroupID: "task-event-logger",
	})
	defer r.Close()

	for {
		m, err := r.ReadMessage(context.Background())
		if err != nil {
			logger.Printf("error reading message: %v\n", err)
			continue
		}

		logger.Printf("[%s] %s\n", time.Now().Format(time.RFC3339), string(m.Value))
	}
}
