package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"

	"github.com/fluxofest/live-chat/internal/engine"
	"github.com/fluxofest/live-chat/internal/hub"
	"github.com/fluxofest/live-chat/internal/moderation"
	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/internal/repo/mongodb"
	"github.com/fluxofest/live-chat/pkg/util"
)

type SendMessageParams struct {
	RoomID  string
	Session models.Session
	Content string
}

type ChatUsecase interface {
	// SendMessage runs the full local send path: room check, slow mode,
	// moderation, then the engagement engine. Rejections come back as
	// *models.RejectedError or *models.SlowModeError.
	SendMessage(ctx context.Context, params SendMessageParams) (*models.ChatMessage, error)
	// HandleRemoteMessage admits a message delivered by the transport
	// collaborator. Duplicates of locally sent messages converge on one
	// buffer entry.
	HandleRemoteMessage(ctx context.Context, msg models.ChatMessage) error
	RoomMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error)
	ActivePins(ctx context.Context, roomID string) ([]models.PinnedMessage, error)
	Hype(ctx context.Context, roomID string) (models.HypeStatus, error)
}

type chatUsecase struct {
	registry    *EngineRegistry
	validator   *moderation.Validator
	slowMode    *engine.SlowMode
	roomRepo    mongodb.RoomRepository
	messageRepo mongodb.MessageRepository
	hub         *hub.Hub
}

func NewChatUsecase(
	registry *EngineRegistry,
	validator *moderation.Validator,
	slowMode *engine.SlowMode,
	roomRepo mongodb.RoomRepository,
	messageRepo mongodb.MessageRepository,
	h *hub.Hub,
) ChatUsecase {
	return &chatUsecase{
		registry:    registry,
		validator:   validator,
		slowMode:    slowMode,
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		hub:         h,
	}
}

func (uc *chatUsecase) SendMessage(ctx context.Context, params SendMessageParams) (*models.ChatMessage, error) {
	now := time.Now()

	if err := uc.checkRoom(ctx, params.RoomID, now); err != nil {
		return nil, err
	}

	if ok, retry := uc.slowMode.Check(params.Session.UserID, now); !ok {
		return nil, &models.SlowModeError{RetryAfter: retry}
	}

	if verdict := uc.validator.Validate(params.Content); !verdict.Accepted {
		log.Infow(ctx, "message rejected",
			"room_id", params.RoomID,
			"user_id", params.Session.UserID,
			"category", verdict.Category)
		return nil, &models.RejectedError{Reason: verdict.Reason}
	}

	msg := models.ChatMessage{
		ID:     uuid.NewString(),
		RoomID: params.RoomID,
		Author: models.Author{
			UserID:    params.Session.UserID,
			Name:      params.Session.Name,
			AvatarURL: params.Session.AvatarURL,
		},
		RoleBadge: params.Session.RoleBadge,
		Content:   params.Content,
		CreatedAt: now,
	}

	outcome := uc.registry.Get(params.RoomID).OnMessage(msg, now)
	uc.archive(ctx, outcome.Message)
	uc.hub.BroadcastAll(outcome.Events)

	return &outcome.Message, nil
}

func (uc *chatUsecase) HandleRemoteMessage(ctx context.Context, msg models.ChatMessage) error {
	if msg.ID == "" || msg.RoomID == "" {
		return fmt.Errorf("remote message missing id or room")
	}

	// Remote messages were validated at their origin, but the blocklist is
	// instance-local config, so screen them again before they enter state.
	if verdict := uc.validator.Validate(msg.Content); !verdict.Accepted {
		log.Warnw(ctx, "remote message rejected",
			"room_id", msg.RoomID,
			"message_id", msg.ID,
			"category", verdict.Category)
		return nil
	}

	outcome := uc.registry.Get(msg.RoomID).OnMessage(msg, time.Now())
	if outcome.Duplicate {
		return nil
	}
	uc.hub.BroadcastAll(outcome.Events)
	return nil
}

// historyLimit caps the archive fallback at one buffer's worth.
const historyLimit = 100

func (uc *chatUsecase) RoomMessages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	if err := uc.roomExists(ctx, roomID); err != nil {
		return nil, err
	}
	if msgs := uc.registry.Get(roomID).Messages(); len(msgs) > 0 {
		return msgs, nil
	}

	// Cold buffer after a restart; serve history from the archive.
	archived, err := uc.messageRepo.ListByRoom(ctx, roomID, historyLimit)
	if err != nil {
		return nil, err
	}
	msgs := util.ConvertList(archived, util.Val[models.ChatMessage])
	// The archive query is newest first; the room renders oldest first.
	slices.Reverse(msgs)
	return msgs, nil
}

func (uc *chatUsecase) ActivePins(ctx context.Context, roomID string) ([]models.PinnedMessage, error) {
	if err := uc.roomExists(ctx, roomID); err != nil {
		return nil, err
	}
	return uc.registry.Get(roomID).ActivePins(), nil
}

func (uc *chatUsecase) Hype(ctx context.Context, roomID string) (models.HypeStatus, error) {
	if err := uc.roomExists(ctx, roomID); err != nil {
		return models.HypeStatus{}, err
	}
	return uc.registry.Get(roomID).Hype(), nil
}

func (uc *chatUsecase) checkRoom(ctx context.Context, roomID string, now time.Time) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.Status(now) == models.RoomExpired {
		// An expired room goes read-only and its live state is discarded.
		uc.registry.Remove(roomID)
		return models.ErrRoomExpired
	}
	return nil
}

func (uc *chatUsecase) roomExists(ctx context.Context, roomID string) error {
	_, err := uc.roomRepo.GetByID(ctx, roomID)
	return err
}

// archive persists an accepted message for post-restart history. Archive
// failures are logged, never surfaced: the live path must not depend on
// storage.
func (uc *chatUsecase) archive(ctx context.Context, msg models.ChatMessage) {
	if err := uc.messageRepo.Insert(ctx, &msg); err != nil {
		log.Errorw(ctx, "archive message", "error", err, "message_id", msg.ID)
	}
}
