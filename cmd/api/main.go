package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/regsaude/profissionais-api/internal/config"
	auditoriaHandler "github.com/regsaude/profissionais-api/internal/handler/auditoria"
	authHandler "github.com/regsaude/profissionais-api/internal/handler/auth"
	cidadeHandler "github.com/regsaude/profissionais-api/internal/handler/cidade"
	equipamentoHandler "github.com/regsaude/profissionais-api/internal/handler/equipamento"
	healthHandler "github.com/regsaude/profissionais-api/internal/handler/health"
	profissionalHandler "github.com/regsaude/profissionais-api/internal/handler/profissional"
	relatorioHandler "github.com/regsaude/profissionais-api/internal/handler/relatorio"
	usuarioHandler "github.com/regsaude/profissionais-api/internal/handler/usuario"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/repository/postgres"
	"github.com/regsaude/profissionais-api/internal/router"
	auditoriaService "github.com/regsaude/profissionais-api/internal/service/auditoria"
	authService "github.com/regsaude/profissionais-api/internal/service/auth"
	cidadeService "github.com/regsaude/profissionais-api/internal/service/cidade"
	equipamentoService "github.com/regsaude/profissionais-api/internal/service/equipamento"
	profissionalService "github.com/regsaude/profissionais-api/internal/service/profissional"
	relatorioService "github.com/regsaude/profissionais-api/internal/service/relatorio"
	usuarioService "github.com/regsaude/profissionais-api/internal/service/usuario"
	"github.com/regsaude/profissionais-api/pkg/auth"
	"github.com/regsaude/profissionais-api/pkg/logger"
	"github.com/regsaude/profissionais-api/pkg/security"
)

func main() {
	logger.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	base := postgres.NewBaseRepository(db)
	cidadeRepo := postgres.NewCidadeRepository(base)
	equipamentoRepo := postgres.NewEquipamentoRepository(base)
	usuarioRepo := postgres.NewUsuarioRepository(base)
	profissionalRepo := postgres.NewProfissionalRepository(base)
	auditoriaRepo := postgres.NewAuditoriaRepository(base)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)

	auditor := auditoriaService.NewService(auditoriaRepo, usuarioRepo)
	cidadeSvc := cidadeService.NewService(cidadeRepo, usuarioRepo, auditor)
	equipamentoSvc := equipamentoService.NewService(equipamentoRepo, profissionalRepo, usuarioRepo, auditor)
	profissionalSvc := profissionalService.NewService(profissionalRepo, usuarioRepo, auditor)
	usuarioSvc := usuarioService.NewService(usuarioRepo, hasher, auditor)
	authSvc := authService.NewService(usuarioRepo, jwtSvc, hasher, auditor)
	relatorioSvc := relatorioService.NewService(profissionalRepo, usuarioRepo, auditor)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		cidadeHandler.NewHandler(cidadeSvc),
		equipamentoHandler.NewHandler(equipamentoSvc),
		profissionalHandler.NewHandler(profissionalSvc),
		usuarioHandler.NewHandler(usuarioSvc),
		auditoriaHandler.NewHandler(auditor),
		relatorioHandler.NewHandler(relatorioSvc),
		router.RouterConfig{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: corsConfig,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
