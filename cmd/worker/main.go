package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"redbook-go/internal/config"
	"redbook-go/internal/infra/database"
	infraES "redbook-go/internal/infra/elasticsearch"
	infraKafka "redbook-go/internal/infra/kafka"
	"redbook-go/internal/repository"
	"redbook-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 索引同步 worker：消费笔记索引事件，把笔记文档写入/移出 Elasticsearch
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["post_index"]
	groupID := "redbook-go-index-worker"

	logger.Info("Index worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	postRepo := repository.NewPostRepository(database.Get())

	handler := func(event *infraKafka.PostIndexEvent) error {
		switch event.Action {
		case infraKafka.IndexActionDelete:
			return infraES.DeletePost(ctx, event.PostID)
		case infraKafka.IndexActionUpsert:
			post, err := postRepo.GetByIDWithUser(event.PostID)
			if err != nil {
				// 事件落后于删除时笔记已不存在，把索引里的残留清掉
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return infraES.DeletePost(ctx, event.PostID)
				}
				return err
			}
			return infraES.SyncPost(ctx, post, post.User.Nickname)
		default:
			logger.Warn("Unknown index event action",
				zap.String("action", event.Action),
				zap.Int64("post_id", event.PostID),
			)
			return nil
		}
	}

	infraKafka.StartPostIndexConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
