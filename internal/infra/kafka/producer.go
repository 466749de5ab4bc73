package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"redbook-go/internal/config"
	"redbook-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 索引事件动作
const (
	IndexActionUpsert = "upsert"
	IndexActionDelete = "delete"
)

// PostIndexEvent 笔记索引事件消息体，worker 消费后同步到 ES
type PostIndexEvent struct {
	Action string `json:"action"`
	PostID int64  `json:"post_id"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendPostIndexEvent 发送笔记索引事件到 Kafka
func SendPostIndexEvent(ctx context.Context, topic string, event *PostIndexEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal post index event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("post-%d", event.PostID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send post index event: %w", err)
	}

	logger.Info("Post index event sent",
		zap.Int64("post_id", event.PostID),
		zap.String("action", event.Action),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
