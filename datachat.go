package datachat

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/averoth/datachat/core/classify"
	"github.com/averoth/datachat/core/pipeline"
	"github.com/averoth/datachat/core/rag"
	"github.com/averoth/datachat/core/retrieval"
	"github.com/averoth/datachat/core/route"
	"github.com/averoth/datachat/database"
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/loader"
	"github.com/averoth/datachat/model"
	loadSql "github.com/averoth/datachat/sql"
)

// DataChat provides a unified interface to question routing and
// retrieval-augmented answering over tabular data.
type DataChat struct {
	Classifier   *classify.Classifier
	Indexer      *pipeline.Indexer
	Engine       *retrieval.Engine
	Policy       *retrieval.Policy
	Orchestrator *rag.Orchestrator
	// Optional embedding backend, set via UseVectorBackend
	DB      *helper.Database
	Vectors *database.VectorsDBHandler
	Schema  *database.SchemaDBHandler
	// Logging
	log *slog.Logger

	dispatcher *route.Dispatcher
	handlers   map[model.Category]route.Handler
	embedder   pipeline.EmbedFunc
	dataset    *model.Dataset
}

// New creates a DataChat instance with the keyword backend. Passing nil
// configs uses the defaults.
func New(indexConfig *model.IndexConfig, queryConfig *model.QueryConfig) (*DataChat, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	if indexConfig == nil {
		defaultIndexConfig := model.DefaultIndexConfig()
		indexConfig = &defaultIndexConfig
	}
	if queryConfig == nil {
		defaultQueryConfig := model.DefaultQueryConfig()
		queryConfig = &defaultQueryConfig
	}

	classifier, err := classify.DefaultClassifier()
	if err != nil {
		return nil, helper.NewError("create classifier", err)
	}

	indexer, err := pipeline.NewIndexer(*indexConfig)
	if err != nil {
		return nil, helper.NewError("create indexer", err)
	}

	engine := retrieval.NewEngine()

	orchestrator, err := rag.NewOrchestrator(retrieval.NewKeywordStrategy(engine), engine, *queryConfig, logger)
	if err != nil {
		return nil, helper.NewError("create orchestrator", err)
	}

	chat := &DataChat{
		Classifier:   classifier,
		Indexer:      indexer,
		Engine:       engine,
		Policy:       retrieval.NewPolicy(nil),
		Orchestrator: orchestrator,
		log:          logger,
		handlers:     map[model.Category]route.Handler{},
	}

	err = chat.RegisterHandler(model.CategoryGeneral, route.NewGeneralHandler(nil))
	if err != nil {
		return nil, helper.NewError("register general handler", err)
	}

	return chat, nil
}

// Close closes the database connection of the embedding backend
func (d *DataChat) Close() error {
	if d.DB != nil && d.DB.Instance != nil {
		return d.DB.Instance.Close()
	}
	return nil
}

// RegisterHandler registers or replaces the handler for a category.
// Handlers for database and schema questions are the host's entry
// points for SQL generation and introspection.
func (d *DataChat) RegisterHandler(category model.Category, handler route.Handler) error {
	if !category.Valid() {
		return helper.NewError("register handler", fmt.Errorf("unknown category %q", category))
	}
	if handler == nil {
		return helper.NewError("register handler", fmt.Errorf("handler is nil"))
	}

	d.handlers[category] = handler

	dispatcher, err := route.NewDispatcher(d.Classifier, d.handlers, d.log)
	if err != nil {
		return helper.NewError("create dispatcher", err)
	}
	d.dispatcher = dispatcher

	return nil
}

// IndexDataset chunks and summarizes the dataset and swaps it into the
// retrieval engine. With the embedding backend active the chunks are
// embedded and stored in the vector store as well.
func (d *DataChat) IndexDataset(ctx context.Context, dataset *model.Dataset) error {
	if dataset == nil {
		return helper.NewError("index dataset", fmt.Errorf("dataset is nil"))
	}

	index := d.Indexer.Index(dataset)
	d.Engine.SetIndex(index)
	d.dataset = dataset

	d.log.Info("Indexed dataset", slog.String("dataset", dataset.Name), slog.Int("num_chunks", index.NumChunks()))

	if d.Vectors != nil && d.embedder != nil {
		embeddings, err := pipeline.EmbedIndex(index, d.embedder)
		if err != nil {
			return helper.NewError("embed index", err)
		}

		err = d.Vectors.ReplaceDataset(ctx, index, embeddings)
		if err != nil {
			return helper.NewError("store embeddings", err)
		}
	}

	return nil
}

// IndexCSV reads a CSV file and indexes it
func (d *DataChat) IndexCSV(ctx context.Context, path string) error {
	dataset, err := loader.CSV(path)
	if err != nil {
		return helper.NewError("load csv", err)
	}

	return d.IndexDataset(ctx, dataset)
}

// Classify returns the category of a question
func (d *DataChat) Classify(question string) model.Category {
	return d.Classifier.Classify(question)
}

// ShouldAugment reports whether a question would be answered with
// retrieval augmentation
func (d *DataChat) ShouldAugment(question string) bool {
	return d.Policy.ShouldAugment(question) && d.Engine.NumChunks() > 0
}

// Ask answers a question. Questions the augmentation policy selects are
// answered through retrieval-augmented generation when data is indexed;
// everything else is routed to the registered category handlers.
func (d *DataChat) Ask(ctx context.Context, question string, answerFn rag.AnswerFunc) (string, model.Category, error) {
	category := d.Classify(question)

	if d.ShouldAugment(question) && answerFn != nil {
		answer, err := d.Orchestrator.GenerateResponse(ctx, question, answerFn)
		if err != nil {
			return "", category, helper.NewError("generate augmented response", err)
		}
		return answer, category, nil
	}

	answer, category, err := d.dispatcher.Dispatch(ctx, question)
	if err != nil {
		return "", category, helper.NewError("dispatch question", err)
	}

	return answer, category, nil
}

// Status reports the active backend and index and history sizes
func (d *DataChat) Status() rag.Status {
	return d.Orchestrator.Status()
}

// History returns a copy of the conversation history
func (d *DataChat) History() []model.ConversationRecord {
	return d.Orchestrator.History()
}

// SampleQuestions returns example questions, extended with questions
// about the indexed dataset and the connected database's tables.
func (d *DataChat) SampleQuestions(ctx context.Context) []string {
	questions := []string{
		"What tables are available in the database?",
		"What's the total sales amount in the CSV?",
		"Generate a SQL query to find the top 10 customers",
		"What are the column names in the CSV file?",
		"Show me statistics about the data",
	}

	if d.dataset != nil {
		for i, idx := range d.dataset.ColumnsOfType(model.ColumnNumeric) {
			if i >= 3 {
				break
			}
			questions = append(questions, fmt.Sprintf("What is the average %v?", d.dataset.Columns[idx].Name))
		}
	}

	if d.Schema != nil {
		tables, err := d.Schema.ListTables(ctx)
		if err != nil {
			d.log.Warn(fmt.Sprintf("Listing tables for sample questions failed: %v", err))
		} else {
			for i, table := range tables {
				if i >= 3 {
					break
				}
				questions = append(questions, fmt.Sprintf("Show me data from the %v table", table))
			}
		}
	}

	return questions
}

// UseVectorBackend connects to Postgres and switches retrieval from
// keyword overlap to embedding similarity. The schema introspection
// handler is registered for schema questions. embeddingDim must match
// the embedding model (384 for the default all-MiniLM-L6-v2).
func (d *DataChat) UseVectorBackend(ctx context.Context, config *helper.DatabaseConfiguration, embeddingDim int) error {
	db := helper.NewDatabase("datachat", config, d.log)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return helper.NewError("initialize database extensions", err)
	}

	vectors, err := database.NewVectorsDBHandler(db, embeddingDim, false)
	if err != nil {
		return helper.NewError("create vectors handler", err)
	}

	schema, err := database.NewSchemaDBHandler(db, config.Schema)
	if err != nil {
		return helper.NewError("create schema handler", err)
	}

	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	d.DB = db
	d.Vectors = vectors
	d.Schema = schema
	d.embedder = embedder

	d.Orchestrator.SetStrategy(retrieval.NewVectorStrategy(vectors, embedder))

	if d.handlers[model.CategorySchema] == nil {
		err = d.RegisterHandler(model.CategorySchema, route.HandlerFunc(schema.AnswerSchemaQuestion))
		if err != nil {
			return helper.NewError("register schema handler", err)
		}
	}

	// Already indexed data is re-embedded into the vector store
	if index := d.Engine.Snapshot(); index != nil && d.dataset != nil {
		embeddings, err := pipeline.EmbedIndex(index, embedder)
		if err != nil {
			return helper.NewError("embed index", err)
		}

		err = vectors.ReplaceDataset(ctx, index, embeddings)
		if err != nil {
			return helper.NewError("store embeddings", err)
		}
	}

	d.log.Info("Switched to embedding retrieval backend")

	return nil
}

// SetEmbedder overrides the embedding function used by the vector
// backend. Must be called before UseVectorBackend has indexed data to
// take effect for stored embeddings.
func (d *DataChat) SetEmbedder(embedder pipeline.EmbedFunc) {
	d.embedder = embedder
	if d.Vectors != nil {
		d.Orchestrator.SetStrategy(retrieval.NewVectorStrategy(d.Vectors, embedder))
	}
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (d *DataChat) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	if d.Vectors == nil {
		return helper.NewError("change index type", fmt.Errorf("embedding backend not active"))
	}
	return d.Vectors.ChangeIndexType(ctx, indexType, params)
}
