package constant

import "time"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Chunking
const (
	ChunkSize    = 300 // words per chunk
	ChunkOverlap = 60  // words shared between consecutive chunks
)

// Ingestion
const (
	EmbedBatchSize        = 50
	DefaultIngestInterval = 10 * time.Second
)

// Retrieval
const (
	DefaultTopK          = 3
	SimilarityThreshold  = 0.2 // matches scoring below this are dropped
	UnknownDocumentName  = "Unknown Document"
	DocumentNameCacheTTL = 5 * time.Minute
)

// Generation
const (
	MaxCharsPerChunk     = 1000
	MaxTotalContextChars = 5000
	MaxTokensToGenerate  = 256
	GenerationTemp       = 0.2
	ChatHistoryLimit     = 6
)

// Sessions
const (
	DefaultSessionTitle = "New Chat"
	SessionTitleMaxLen  = 50
)

// Canned replies
const (
	NoAnswerReply  = "I do not know."
	SmallTalkReply = "Hi there. Ask me something based on your uploaded documents and I'll help."
)

// Pricing, USD per token
const (
	DefaultInputTokenPrice  = 0.0001 / 1000
	DefaultOutputTokenPrice = 0.0002 / 1000
)
