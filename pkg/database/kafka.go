package database

import (
	"context"
	"fmt"
	"time"

	"social_network_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PingKey 建立 writer 時送出的測試訊息 key, consumer 需略過
const PingKey = "ping"

// NewKafkaWriterWithRetry 嘗試建立 Kafka Writer 並發送測試訊息以確認連線
func NewKafkaWriterWithRetry(ctx context.Context, k KafkaConnection) (*kafka.Writer, error) {
	var err error

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(k.Brokers...),
			Topic:                  k.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}

		err = writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(PingKey),
			Value: []byte(PingKey),
		})
		if err == nil {
			logger.Log.Info("Kafka Writer 建立成功", zap.Int("attempt", attempt), zap.String("topic", k.Topic))
			return writer, nil
		}

		logger.Log.Warn("Kafka Writer 建立失敗",
			zap.Int("attempt", attempt),
			zap.Int("max", k.RetryCount),
			zap.Error(err),
		)
		_ = writer.Close()
		time.Sleep(k.RetryInterval)
	}

	return nil, fmt.Errorf("無法建立 Kafka Writer，經過 %d 次嘗試: %w", k.RetryCount, err)
}

// NewKafkaReader create consumer group reader
func NewKafkaReader(k KafkaConnection) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     k.Brokers,
		Topic:       k.Topic,
		GroupID:     k.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
}
