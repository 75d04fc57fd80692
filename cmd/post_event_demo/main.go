package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social_network_service/internal/friendship/domain"
	"social_network_service/pkg/config"
	"social_network_service/pkg/database"
	"social_network_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 模擬 post service: post 審核通過後送出 post_events
// kafka-topics.sh --bootstrap-server localhost:9092 --topic post_events --create

var (
	author   = flag.String("author", "", "author user id (required)")
	content  = flag.String("content", "hello from demo", "post content")
	count    = flag.Int("count", 1, "number of events, 0 means until interrupted")
	interval = flag.Duration("interval", 5*time.Second, "interval between events")
)

func main() {
	flag.Parse()
	logger.Log = logger.Initialize(config.EnvConfig.PostEventDemo, config.EnvConfig.PostEventDemoLogPath)
	defer logger.Log.Sync()

	if *author == "" {
		logger.Log.Fatal("--author is required")
	}
	cfg := config.LoadConfig[config.PostEventDemo](config.EnvConfig.PostEventDemo, config.EnvConfig.PostEventDemoYAMLPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := database.NewKafkaWriterWithRetry(ctx, database.NewKafkaSetting(cfg.KafKa))
	if err != nil {
		logger.Log.Fatal("create kafka writer", zap.Error(err))
	}
	defer w.Close()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for i := 0; *count == 0 || i < *count; i++ {
		ev := domain.PostEvent{
			PostID:     uuid.NewString(),
			AuthorID:   *author,
			Content:    fmt.Sprintf("%s #%d", *content, i+1),
			ApprovedAt: time.Now().UTC(),
		}
		value, err := json.Marshal(ev)
		if err != nil {
			logger.Log.Fatal("marshal post event", zap.Error(err))
		}

		if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.AuthorID), Value: value}); err != nil {
			logger.Log.Error("write post event", zap.Error(err))
		} else {
			logger.Log.Info("post event sent", zap.String("postID", ev.PostID), zap.String("author", ev.AuthorID))
		}

		if *count != 0 && i == *count-1 {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
