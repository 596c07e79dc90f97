package bootstrap

import (
	"log"

	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/controller"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/internal/service"
	"knowledge-assistant-be/pkg/embedding"
	"knowledge-assistant-be/pkg/llm/factory"
	"knowledge-assistant-be/pkg/vectorindex"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatbotController  controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	IngestionService service.IIngestionService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		log.Fatalf("[FATAL] Unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Vector Index
	vectorIndex := vectorindex.NewPgVectorIndex(db)

	// 4. Services
	documentService := service.NewDocumentService(uowFactory, sysLogger)
	retrievalService := service.NewRetrievalService(uowFactory, embeddingProvider, vectorIndex, sysLogger)
	usageService := service.NewUsageService(uowFactory)
	sessionService := service.NewSessionService(uowFactory)
	askService := service.NewAskService(
		uowFactory,
		retrievalService,
		usageService,
		llmProvider,
		cfg.Ai.LLMModel,
		sysLogger,
	)
	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		vectorIndex,
		cfg.Ingest.Interval,
		cfg.Ingest.BatchSize,
		sysLogger,
	)

	// 5. Controllers
	documentController := controller.NewDocumentController(documentService, retrievalService, askService)
	chatbotController := controller.NewChatbotController(sessionService)

	return &Container{
		DocumentController: documentController,
		ChatbotController:  chatbotController,
		IngestionService:   ingestionService,
		Logger:             sysLogger,
	}
}
