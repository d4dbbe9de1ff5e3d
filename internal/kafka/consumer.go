package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/gammazero/workerpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/pkg/util"
)

// MessageHandler processes one decoded event from the bus.
type MessageHandler func(ctx context.Context, msg kafka.Message) error

type Consumer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type kafkaConsumer struct {
	reader  *kafka.Reader
	metrics *prometheus.HistogramVec
	handler MessageHandler
	done    chan struct{}
	pool    *workerpool.WorkerPool
}

// NewConsumer creates a Kafka consumer reading the configured topic. When
// Kafka is disabled in config, a noop consumer is returned so the rest of
// the wiring stays unchanged.
func NewConsumer(cfg *config.KafkaConfig, handler MessageHandler) (Consumer, error) {
	if !cfg.Enabled {
		return &noopConsumer{}, nil
	}

	metrics, err := util.GetHistogramVec("kafka_messages_consumed", "status", "topic", "group")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.LastOffset,
	})

	return &kafkaConsumer{
		reader:  reader,
		metrics: metrics,
		handler: handler,
		done:    make(chan struct{}),
		pool:    workerpool.New(4),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	log.Infof(ctx, "starting kafka consumer for topic %s", c.reader.Config().Topic)

	groupID := c.reader.Config().GroupID
	for ctx.Err() == nil {
		select {
		case <-c.done:
			return nil
		default:
		}

		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Errorw(ctx, "error reading message", "error", err)
			continue
		}

		c.pool.Submit(func() {
			c.processMessage(ctx, msg, groupID)
		})
	}
	return nil
}

func (c *kafkaConsumer) Stop(ctx context.Context) error {
	log.Infof(ctx, "stopping kafka consumer")
	close(c.done)
	c.pool.StopWait()
	return c.reader.Close()
}

func (c *kafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, groupID string) {
	start := time.Now()
	lagMs := start.Sub(msg.Time).Milliseconds()

	err := c.handle(ctx, msg)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		log.Errorw(ctx, "error processing message",
			"error", err,
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"lag_ms", lagMs,
			"key", string(msg.Key),
			"value", json.RawMessage(msg.Value),
		)
	}

	c.metrics.
		WithLabelValues(status, msg.Topic, groupID).
		Observe(duration.Seconds())
}

func (c *kafkaConsumer) handle(ctx context.Context, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC RECOVER: %+v", r)
		}
	}()
	return c.handler(ctx, msg)
}

// noopConsumer is used when Kafka is disabled
type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error { return nil }
func (n *noopConsumer) Stop(ctx context.Context) error  { return nil }

// StartConsumer binds a consumer to the fx lifecycle.
func StartConsumer(lc fx.Lifecycle, sd fx.Shutdowner, consumer Consumer) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Errorw(ctx, "kafka consumer stopped", "error", err)
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return consumer.Stop(stopCtx)
		},
	})
}
