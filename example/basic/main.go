package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/averoth/datachat"
	"github.com/averoth/datachat/llm"
)

const sampleCSV = `region,product,amount,quantity
north,widget,1200.50,12
north,gadget,899.99,3
south,widget,450.00,5
south,gizmo,2300.75,20
east,gadget,670.10,7
west,widget,1580.25,16
west,gizmo,310.00,2
`

func main() {
	// Write a small sales file to index
	path := filepath.Join(os.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		log.Fatalf("Failed to write sample CSV: %v", err)
	}

	chat, err := datachat.New(nil, nil)
	if err != nil {
		log.Fatalf("Failed to create datachat: %v", err)
	}
	defer chat.Close()

	ctx := context.Background()

	fmt.Println("Indexing sales.csv...")
	if err := chat.IndexCSV(ctx, path); err != nil {
		log.Fatalf("Failed to index CSV: %v", err)
	}

	status := chat.Status()
	fmt.Printf("Backend: %v, indexed chunks: %v\n\n", status.Backend, status.IndexedChunks)

	// Without an API key the answer function just echoes a canned reply;
	// the retrieved context and provenance still show the RAG path.
	answerFn := llm.StaticAnswerFunc("Based on the data, widgets dominate sales in the north and west regions.")
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		provider, err := llm.NewOpenAIProvider(apiKey, "")
		if err != nil {
			log.Fatalf("Failed to create OpenAI provider: %v", err)
		}
		answerFn = provider.AnswerFunc()
	}

	questions := []string{
		"Hello, what can you do?",
		"Generate a SQL query to find the top customers",
		"Analyze the sales data and tell me about regional patterns",
	}

	for _, question := range questions {
		fmt.Printf("Q: %v\n", question)
		fmt.Printf("   category=%v augment=%v\n", chat.Classify(question), chat.ShouldAugment(question))

		answer, _, err := chat.Ask(ctx, question, answerFn)
		if err != nil {
			log.Fatalf("Failed to answer question: %v", err)
		}
		fmt.Printf("A: %v\n\n", answer)
	}

	fmt.Println("Sample questions:")
	for _, question := range chat.SampleQuestions(ctx) {
		fmt.Printf("  - %v\n", question)
	}

	fmt.Printf("\nConversation history: %v augmented answers\n", len(chat.History()))
}
