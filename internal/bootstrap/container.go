package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"promptia-be/internal/config"
	"promptia-be/internal/controller"
	"promptia-be/internal/pkg/credentials"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/repository/implementation"
	"promptia-be/internal/service"
	"promptia-be/pkg/chat"
	"promptia-be/pkg/chat/history"
	"promptia-be/pkg/chat/title"
	"promptia-be/pkg/llm/gemini"
	"promptia-be/pkg/llm/tools"
	pktNats "promptia-be/pkg/nats"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	HealthController  controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure
	Logger        logger.ILogger
	TokenManager  *credentials.TokenManager
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	hasher := credentials.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := credentials.NewTokenManager(cfg.Auth.JwtSecret, cfg.Auth.JwtExpiresIn)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional plumbing: a missing broker degrades to local-only
	// operation instead of failing startup.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. Repositories
	userRepo := implementation.NewUserRepository(db)
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	invocationRepo := implementation.NewToolInvocationRepository(db)

	// 4. LLM provider and turn pipeline
	provider, err := gemini.New(context.Background(), cfg.Ai.GeminiAPIKey, cfg.Ai.ChatModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: GEMINI (%s)", cfg.Ai.ChatModel)

	registry := tools.DefaultRegistry()
	engine := chat.NewTurnEngine(provider, registry, sysLogger)
	loader := history.NewLoader(messageRepo)
	titleGenerator := title.NewGenerator(provider, cfg.Ai.TitleModel, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.TitleTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.TitleTopic,
		sessionRepo,
		messageRepo,
		titleGenerator,
		sysLogger,
	)

	authService := service.NewAuthService(userRepo, hasher, tokens, natsPub, sysLogger)
	sessionService := service.NewSessionService(sessionRepo, messageRepo)
	chatService := service.NewChatService(
		sessionRepo,
		messageRepo,
		invocationRepo,
		loader,
		engine,
		publisherService,
		natsPub,
		sysLogger,
	)
	audioService := service.NewAudioService(provider, cfg.Ai.TTSModel, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService, audioService),
		HealthController:  controller.NewHealthController(),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
		TokenManager:      tokens,
		NatsPublisher:     natsPub,
	}
}
