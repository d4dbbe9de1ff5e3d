package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/internal/usecase"
)

// Envelope is the bus format for chat events published by peer instances.
type Envelope struct {
	Pattern string          `json:"pattern"`
	Data    json.RawMessage `json:"data"`
}

// NewMessageHandler decodes "message.sent" events from peer instances and
// feeds them into the local room engines, keeping every instance's live
// state in sync.
func NewMessageHandler(chatUsecase usecase.ChatUsecase) MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		pattern := gjson.GetBytes(msg.Value, "pattern").String()
		if pattern != "message.sent" {
			log.Infow(ctx, "ignoring event", "pattern", pattern)
			return nil
		}

		var envelope Envelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			return fmt.Errorf("unmarshal envelope: %w", err)
		}

		message, err := decodeMessage(envelope.Data)
		if err != nil {
			return err
		}
		return chatUsecase.HandleRemoteMessage(ctx, message)
	}
}

// decodeMessage tolerates producers that send amount as a string instead
// of a number.
func decodeMessage(data json.RawMessage) (models.ChatMessage, error) {
	var msg models.ChatMessage
	if err := json.Unmarshal(data, &msg); err == nil {
		return msg, nil
	}

	var loose struct {
		models.ChatMessage
		Amount any `json:"amount"`
	}
	if err := json.Unmarshal(data, &loose); err != nil {
		return models.ChatMessage{}, fmt.Errorf("unmarshal message: %w", err)
	}
	msg = loose.ChatMessage
	msg.Amount = cast.ToFloat64(loose.Amount)
	return msg, nil
}

// StartConsumeMessages wires the remote message stream when Kafka is
// enabled.
func StartConsumeMessages(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	chatUsecase usecase.ChatUsecase,
) error {
	if !conf.Kafka.Enabled {
		log.Warnf(context.Background(), "kafka consumer is disabled in configuration")
		return nil
	}

	consumer, err := NewConsumer(&conf.Kafka, NewMessageHandler(chatUsecase))
	if err != nil {
		return err
	}
	StartConsumer(lc, sd, consumer)
	return nil
}
