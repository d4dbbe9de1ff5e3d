package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/internal/usecase"
)

// handleFunc adapts a bare function to the chat usecase interface; only
// HandleRemoteMessage is exercised here.
type handleFunc func(ctx context.Context, msg models.ChatMessage) error

func (f handleFunc) HandleRemoteMessage(ctx context.Context, msg models.ChatMessage) error {
	return f(ctx, msg)
}

func (f handleFunc) SendMessage(context.Context, usecase.SendMessageParams) (*models.ChatMessage, error) {
	panic("not used")
}

func (f handleFunc) RoomMessages(context.Context, string) ([]models.ChatMessage, error) {
	panic("not used")
}

func (f handleFunc) ActivePins(context.Context, string) ([]models.PinnedMessage, error) {
	panic("not used")
}

func (f handleFunc) Hype(context.Context, string) (models.HypeStatus, error) {
	panic("not used")
}

func TestMessageHandler(t *testing.T) {
	var handled []models.ChatMessage
	handler := NewMessageHandler(handleFunc(func(_ context.Context, msg models.ChatMessage) error {
		handled = append(handled, msg)
		return nil
	}))

	value := []byte(`{"pattern":"message.sent","data":{"id":"m1","room_id":"r1","content":"oi","author":{"user_id":"u1"}}}`)
	require.NoError(t, handler(context.Background(), kafka.Message{Value: value}))
	require.Len(t, handled, 1)
	assert.Equal(t, "m1", handled[0].ID)
	assert.Equal(t, "r1", handled[0].RoomID)
}

func TestMessageHandlerIgnoresOtherPatterns(t *testing.T) {
	var handled []models.ChatMessage
	handler := NewMessageHandler(handleFunc(func(_ context.Context, msg models.ChatMessage) error {
		handled = append(handled, msg)
		return nil
	}))

	value := []byte(`{"pattern":"user.joined","data":{"id":"x"}}`)
	require.NoError(t, handler(context.Background(), kafka.Message{Value: value}))
	assert.Empty(t, handled)
}

func TestMessageHandlerStringAmount(t *testing.T) {
	var handled []models.ChatMessage
	handler := NewMessageHandler(handleFunc(func(_ context.Context, msg models.ChatMessage) error {
		handled = append(handled, msg)
		return nil
	}))

	value := []byte(`{"pattern":"message.sent","data":{"id":"d1","room_id":"r1","content":"pix","is_donation":true,"amount":"25.5"}}`)
	require.NoError(t, handler(context.Background(), kafka.Message{Value: value}))
	require.Len(t, handled, 1)
	assert.Equal(t, 25.5, handled[0].Amount)
}

func TestMessageHandlerMalformed(t *testing.T) {
	handler := NewMessageHandler(handleFunc(func(context.Context, models.ChatMessage) error {
		return nil
	}))

	err := handler(context.Background(), kafka.Message{Value: []byte(`{"pattern":"message.sent","data":"nope"}`)})
	require.Error(t, err)
}
