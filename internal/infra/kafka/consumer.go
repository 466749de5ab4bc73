package kafka

import (
	"context"
	"encoding/json"
	"time"

	"redbook-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// IndexEventHandler 处理笔记索引事件的回调函数
type IndexEventHandler func(event *PostIndexEvent) error

// StartPostIndexConsumer 启动笔记索引事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartPostIndexConsumer(ctx context.Context, brokers []string, topic, groupID string, handler IndexEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka post index consumer stopped")
	}()

	logger.Info("Kafka post index consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event PostIndexEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal post index event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(&event); err != nil {
			logger.Error("Failed to handle post index event",
				zap.Int64("post_id", event.PostID),
				zap.String("action", event.Action),
				zap.Error(err),
			)
		}
	}
}
