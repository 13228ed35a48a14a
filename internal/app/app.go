package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/askbox/askbox/internal/config"
	"github.com/askbox/askbox/internal/db"
	"github.com/askbox/askbox/internal/middleware"
	"github.com/askbox/askbox/internal/repository"
	"github.com/askbox/askbox/internal/service"
)

type App struct {
	Cfg                    *config.Config
	DB                     *sqlx.DB
	AuthService            *service.AuthService
	UserService            *service.UserService
	QuestionService        *service.QuestionService
	AnswerService          *service.AnswerService
	EmailService           *service.EmailService
	IdentityWebhookService *service.IdentityWebhookService
	ProfileCache           *service.ProfileCache
	QuestionLimiter        *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.DBAutoMigrate {
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			_ = db.Close(database)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	a, err := NewWithDB(cfg, database)
	if err != nil {
		_ = db.Close(database)
		return nil, err
	}
	return a, nil
}

// NewWithDB wires repositories and services onto an already migrated
// database.
func NewWithDB(cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	questionRepository := repository.NewQuestionRepository(database)
	answerRepository := repository.NewAnswerRepository(database)

	// Services
	authService, err := service.NewAuthService(cfg.ClerkJWTKey, cfg.ClerkAuthorizedParties)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session verification: %w", err)
	}

	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	profileCache := service.NewProfileCache(cfg.ProfileCacheSize, cfg.ProfileCacheTTL)
	userService := service.NewUserService(userRepository, profileCache)
	questionService := service.NewQuestionService(questionRepository, userRepository, emailService)
	answerService := service.NewAnswerService(answerRepository, questionRepository)
	identityWebhookService := service.NewIdentityWebhookService(cfg.ClerkWebhookSecret, userService)

	// Question submission is the only write open to signed-out visitors
	questionLimiter := middleware.NewRateLimiter(cfg.QuestionRateLimit, cfg.QuestionRateWindow)

	return &App{
		Cfg:                    cfg,
		DB:                     database,
		AuthService:            authService,
		UserService:            userService,
		QuestionService:        questionService,
		AnswerService:          answerService,
		EmailService:           emailService,
		IdentityWebhookService: identityWebhookService,
		ProfileCache:           profileCache,
		QuestionLimiter:        questionLimiter,
	}, nil
}

// Close stops background work, waits for pending notifications and closes
// the database.
func (a *App) Close() error {
	if a.QuestionLimiter != nil {
		a.QuestionLimiter.Stop()
	}
	if a.QuestionService != nil {
		a.QuestionService.Wait()
	}
	if a.ProfileCache != nil {
		a.ProfileCache.Purge()
	}
	return db.Close(a.DB)
}
