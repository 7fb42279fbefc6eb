package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/config"
	"github.com/aliskhannn/quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/quiz-bot/internal/logger"
	"github.com/aliskhannn/quiz-bot/internal/repository"
	"github.com/aliskhannn/quiz-bot/internal/service"
	"github.com/aliskhannn/quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The bank is shuffled once here; every user sees the same order.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	bank, loaded, err := repository.LoadQuestionBank(cfg.Quiz.QuestionsPath, cfg.Quiz.ShuffleQuestions, rng)
	if loaded != nil {
		for _, row := range loaded.Skipped {
			zlog.Debug("question row skipped",
				zap.Int("row", row.Row),
				zap.String("reason", row.Reason),
			)
		}
	}
	if err != nil {
		zlog.Fatal("failed to load questions",
			zap.String("path", cfg.Quiz.QuestionsPath),
			zap.Error(err),
		)
	}
	zlog.Info("questions loaded",
		zap.String("path", cfg.Quiz.QuestionsPath),
		zap.Int("count", bank.Len()),
		zap.Int("skipped", len(loaded.Skipped)),
		zap.Bool("shuffled", cfg.Quiz.ShuffleQuestions),
	)

	var resultRepo service.ResultRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		repo := pgrepo.NewResultRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			zlog.Fatal("failed to prepare database schema", zap.Error(err))
		}
		resultRepo = repo
	} else {
		zlog.Info("DATABASE_URL is not set, quiz history disabled")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zlog.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug
	zlog.Info("authorized on account", zap.String("username", bot.Self.UserName))

	sessions := storage.NewSessionStore(bank)
	resultService := service.NewResultService(resultRepo)
	quizService := service.NewQuizService(
		sessions,
		telegram.NewSender(bot),
		resultService,
		service.QuizOptions{ShowCorrectOnWrong: cfg.Quiz.ShowCorrectOnWrong},
		zlog,
	)

	sweeper := service.NewSessionSweeper(sessions, cfg.Quiz.SessionIdleTTL, cfg.Quiz.SweepSchedule, zlog)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			zlog.Error("session sweeper failed", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(bot, zlog, quizService, resultService, cfg.Telegram.UpdateTimeout)
	if err := handler.RegisterCommands(); err != nil {
		zlog.Warn("failed to set bot commands", zap.Error(err))
	}

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Error("telegram handler failed", zap.Error(err))
	}

	zlog.Info("shutdown signal received")
}
