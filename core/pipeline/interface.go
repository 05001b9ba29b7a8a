package pipeline

// EmbedFunc is a function that generates an embedding vector for text.
// It is only needed by the embedding retrieval backend; the keyword
// backend never embeds anything.
type EmbedFunc func(text string) ([]float32, error)
