// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kaokente-service/internal/config"
	"kaokente-service/internal/db"
	authHandler "kaokente-service/internal/handlers/auth"
	customerHandler "kaokente-service/internal/handlers/customer"
	loyaltyHandler "kaokente-service/internal/handlers/loyalty"
	rewardHandler "kaokente-service/internal/handlers/reward"
	wsHandler "kaokente-service/internal/handlers/websocket"
	ledgercore "kaokente-service/internal/ledger"
	"kaokente-service/internal/middleware"
	"kaokente-service/internal/pkg/jwt"
	"kaokente-service/internal/pkg/session"
	"kaokente-service/internal/repository/postgres"
	"kaokente-service/internal/rewards"
	authUsecase "kaokente-service/internal/service/auth"
	customersvc "kaokente-service/internal/service/customer"
	loyaltysvc "kaokente-service/internal/service/loyalty"
	ws "kaokente-service/internal/websocket"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	dbWrapper := postgres.NewDB(pool)
	if err := dbWrapper.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redisClient = redisClient

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Session Manager & Rate Limiter -----
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Staff password -----
	passwordHash := s.cfg.StaffPasswordHash
	if passwordHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.cfg.StaffPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash staff password: %w", err)
		}
		passwordHash = string(hashed)
	}

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	rewardRepo := postgres.NewRewardRepository(pool)

	if err := rewardRepo.Seed(ctx, rewards.DefaultCatalog); err != nil {
		logger.Error("failed to seed reward catalog", zap.Error(err))
		// Redemption still works off the built-in list.
	}

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)

	// ----- Services -----
	authService := authUsecase.NewAuthService(passwordHash, jwtManager, sessionManager, rateLimiter, logger)
	customerService := customersvc.NewCustomerService(customerRepo, logger)

	earnMode := ledgercore.EarnTruncateSpend
	if s.cfg.LegacyEarning {
		earnMode = ledgercore.EarnTruncateProduct
	}
	loyaltyService := loyaltysvc.NewLoyaltyService(customerRepo, transactionRepo, rewardRepo, hub, earnMode, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService, logger),
		CustomerHandler: customerHandler.NewCustomerHandler(customerService),
		LoyaltyHandler:  loyaltyHandler.NewLoyaltyHandler(loyaltyService),
		RewardHandler:   rewardHandler.NewRewardHandler(rewardRepo),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService),
	}

	SetupRouter(s.engine, logger, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown releases the connection pools.
func (s *Server) Shutdown() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.logger != nil {
		s.logger.Info("server stopped")
	}
}
