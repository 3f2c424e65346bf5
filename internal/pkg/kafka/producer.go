package kafka

import (
	"Linkstone/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// RefreshEvent 刷新成功后对外广播的事件，下游消费做历史趋势和通知
type RefreshEvent struct {
	UserID        uint64    `json:"user_id"`
	Platform      string    `json:"platform"`
	Handle        string    `json:"handle"`
	FollowerCount int64     `json:"follower_count"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// EventProducer 刷新事件生产者，未配置 broker 时为空实现
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg *config.Config) (*EventProducer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("Kafka brokers not configured, refresh events disabled")
		return &EventProducer{}, nil
	}

	saramaCfg := newSaramaConfig(cfg.Kafka)
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &EventProducer{
		producer: producer,
		topic:    cfg.Kafka.RefreshTopic,
	}, nil
}

// PublishRefresh 发送刷新事件，失败只记日志，不影响主流程
func (s *EventProducer) PublishRefresh(ctx context.Context, event *RefreshEvent) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal refresh event error", "err", err)
		return
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.UserID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "publish refresh event error", "topic", s.topic, "err", err)
	}
}

func (s *EventProducer) Close() {
	if s.producer == nil {
		return
	}
	if err := s.producer.Close(); err != nil {
		log.Error("Failed to close kafka producer", "err", err)
	}
}
