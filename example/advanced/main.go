package main

import (
	"context"
	"fmt"
	"log"

	"github.com/averoth/datachat"
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/llm"
	"github.com/averoth/datachat/model"
)

func main() {
	// Start a test PostgreSQL container with pgvector
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	chat, err := datachat.New(nil, nil)
	if err != nil {
		log.Fatalf("Failed to create datachat: %v", err)
	}
	defer chat.Close()

	ctx := context.Background()

	dataset, err := model.NewDataset(
		"measurements",
		[]model.Column{
			{Name: "sensor", Type: model.ColumnCategorical},
			{Name: "temperature", Type: model.ColumnNumeric},
			{Name: "humidity", Type: model.ColumnNumeric},
		},
		[][]string{
			{"alpha", "21.5", "40"},
			{"alpha", "22.1", "42"},
			{"beta", "19.8", "55"},
			{"beta", "20.3", "53"},
			{"gamma", "25.0", "30"},
		},
	)
	if err != nil {
		log.Fatalf("Failed to create dataset: %v", err)
	}

	fmt.Println("Indexing measurements with the keyword backend...")
	if err := chat.IndexDataset(ctx, dataset); err != nil {
		log.Fatalf("Failed to index dataset: %v", err)
	}

	// Switch to the embedding backend: downloads all-MiniLM-L6-v2 on
	// first run and re-embeds the indexed chunks into pgvector.
	fmt.Println("Switching to the embedding backend...")
	if err := chat.UseVectorBackend(ctx, dbConfig, 384); err != nil {
		log.Fatalf("Failed to switch to vector backend: %v", err)
	}

	status := chat.Status()
	fmt.Printf("Backend: %v, indexed chunks: %v\n\n", status.Backend, status.IndexedChunks)

	answerFn := llm.StaticAnswerFunc("Sensor gamma runs hottest; beta sees the highest humidity.")

	questions := []string{
		"Analyze the temperature readings across sensors",
		"What tables are in the database?",
	}

	for _, question := range questions {
		fmt.Printf("Q: %v\n", question)

		answer, category, err := chat.Ask(ctx, question, answerFn)
		if err != nil {
			log.Fatalf("Failed to answer question: %v", err)
		}
		fmt.Printf("A (%v): %v\n\n", category, answer)
	}

	// IVFFlat trades recall for speed on larger datasets
	if err := chat.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{"lists": 10}); err != nil {
		log.Fatalf("Failed to change index type: %v", err)
	}
	fmt.Println("Switched vector index to IVFFlat")
}
