package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybase/internal/app/consumers"
	accsvc "staybase/internal/app/services/accommodation"
	"staybase/internal/app/services/blocksvc"
	rulesvc "staybase/internal/app/services/rules"
	"staybase/internal/infra/broker/kafka"
	"staybase/internal/infra/config"
	mongodb "staybase/internal/infra/db/mongo"
	grpcserver "staybase/internal/infra/grpc"
	ginserver "staybase/internal/infra/http/gin"
	"staybase/internal/infra/obs"
	"staybase/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	mongoClient, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, mongoClient.DB); err != nil {
		logger.Error("mongo index bootstrap failed", "error", err)
		os.Exit(1)
	}

	accRepo := mongodb.NewAccommodationRepository(mongoClient.DB)
	ruleRepo := mongodb.NewRuleRepository(mongoClient.DB)
	blockRepo := mongodb.NewBlockRepository(mongoClient.DB)
	txRunner := mongodb.TxRunner{DB: mongoClient.DB}

	photoStore, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		logger.Warn("photo storage unavailable, uploads disabled", "error", err)
		photoStore = nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, nil)
	if err != nil {
		logger.Warn("kafka producer unavailable, lifecycle events disabled", "error", err)
		producer = nil
	} else {
		defer producer.Close()
	}

	accommodationService := &accsvc.Service{
		Accommodations: accRepo,
		Rules:          ruleRepo,
		Logger:         logger,
	}
	if photoStore != nil {
		accommodationService.Photos = photoStore
	}
	if producer != nil {
		accommodationService.Publisher = producer
	}
	ruleService := &rulesvc.Service{
		Accommodations: accRepo,
		Rules:          ruleRepo,
		Blocks:         blockRepo,
		Tx:             txRunner,
		Logger:         logger,
	}
	blockService := &blocksvc.Service{
		Accommodations: accRepo,
		Blocks:         blockRepo,
		Tx:             txRunner,
		Logger:         logger,
	}

	dispatcher := &consumers.Dispatcher{
		Blocks:         blockService,
		Accommodations: accommodationService,
		TopicPrefix:    cfg.KafkaTopicPrefix,
		Logger:         logger,
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, nil, dispatcher, logger)
	if err != nil {
		logger.Warn("kafka consumer unavailable, event ingestion disabled", "error", err)
	} else {
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx, consumers.Topics(cfg.KafkaTopicPrefix)); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("kafka consumer stopped", "error", err)
			}
		}()
	}

	grpcSrv := &grpcserver.Server{
		Accommodations: accRepo,
		Rules:          ruleService,
		Logger:         logger,
	}
	go func() {
		if err := grpcSrv.Serve(ctx, cfg.GRPCAddr); err != nil {
			logger.Error("grpc server failed", "error", err)
		}
	}()

	handlers := ginserver.Handlers{
		Accommodation:      ginserver.AccommodationHandler{Service: accommodationService},
		Rules:              ginserver.RuleHandler{Service: ruleService},
		Blocks:             ginserver.BlockHandler{Service: blockService},
		IdentityMiddleware: ginserver.IdentityMiddleware(),
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return mongoClient.Ping(pingCtx)
		},
	}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}
