/*
Copyright © 2025 cloudservices
*/
package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/cloudservices/kbot/cache"
	"github.com/cloudservices/kbot/config"
	"github.com/cloudservices/kbot/handler"
	"github.com/cloudservices/kbot/service"
	"github.com/cloudservices/kbot/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chatbot server",
	Long:  `Starts the HTTP server hosting the Slack command, ask, ticket and websocket endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		store := storage.NewS3Store(awsCfg)

		docCache := newDocumentCache(cfg.Cache)

		// Initialize services
		retriever := service.NewBedrockRetriever(awsCfg, cfg.Retrieval)
		knowledge := service.NewKnowledgeService(store, docCache, retriever, cfg.KnowledgeBucket, cfg.KnowledgePrefix)
		template := service.TemplateForStyle(cfg.PromptStyle)

		generator, err := newGenerator(awsCfg, cfg.Generator)
		if err != nil {
			log.Fatalf("Failed to create generator: %v", err)
		}
		invoker := service.NewInvoker(generator, cfg.Generator.MaxAttempts, cfg.Generator.InitialBackoff)
		pipeline := service.NewPipeline(knowledge, template, invoker)
		slackClient := service.NewSlackClient()
		wsService := service.NewWebsocketService(knowledge, template, invoker)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		slackHandler := handler.NewSlackHandler(pipeline, slackClient, store, cfg.OutputBucket, cfg.SlackToken)
		askHandler := handler.NewAskHandler(pipeline)
		ticketHandler := handler.NewTicketHandler(pipeline, store, cfg.SourceBucket, cfg.OutputBucket)

		// Setup routes
		mux := http.NewServeMux()
		mux.Handle("/slack/command", slackHandler.HandleCommand())
		mux.Handle("/api/v1/ask", askHandler.HandleAsk())
		mux.Handle("/api/v1/tickets/answer", ticketHandler.HandleAnswer())
		mux.HandleFunc("/ws/ask", wsService.HandleAsk)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		log.Printf("Starting server on port %s...", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, corsHandler.CorsMiddleware(mux)); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newDocumentCache(cfg config.CacheConfig) cache.Documents {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemory(cfg.TTL)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedis(client, cfg.TTL)
	default:
		return cache.NewNone()
	}
}

func newGenerator(awsCfg aws.Config, cfg config.GeneratorConfig) (service.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return service.NewOpenAIGenerator(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.ModelID), nil
	case "gemini":
		return service.NewGeminiGenerator(cfg.GeminiAPIKeys, cfg.ModelID)
	default:
		return service.NewBedrockGenerator(awsCfg, cfg), nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
