package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/engine"
	"github.com/fluxofest/live-chat/internal/hub"
	"github.com/fluxofest/live-chat/internal/moderation"
	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/internal/repo/mongodb"
	"github.com/fluxofest/live-chat/internal/repo/payments"
)

// The donation composer caps message length; plain chat is unbounded and
// relies on moderation alone.
const maxDonationContentLen = 200

type CreateDonationParams struct {
	RoomID  string
	Session models.Session
	Content string
	Amount  float64
}

type ConfirmDonationParams struct {
	MessageID string
	ChargeID  string
	// Amount is the raw value from the webhook payload; malformed values
	// coerce to zero rather than erroring.
	Amount any
}

type DonationUsecase interface {
	// CreateDonation admits a pending super-chat message. It stays a plain
	// message until the payment collaborator confirms it.
	CreateDonation(ctx context.Context, params CreateDonationParams) (*models.ChatMessage, error)
	// ConfirmDonation applies the tier effects (pin, hype, overlay) once
	// payment is confirmed. Duplicate confirmations are no-ops.
	ConfirmDonation(ctx context.Context, params ConfirmDonationParams) error
}

type donationUsecase struct {
	conf         *config.Config
	registry     *EngineRegistry
	validator    *moderation.Validator
	slowMode     *engine.SlowMode
	roomRepo     mongodb.RoomRepository
	messageRepo  mongodb.MessageRepository
	donationRepo mongodb.DonationRepository
	payments     payments.Client
	hub          *hub.Hub
}

func NewDonationUsecase(
	conf *config.Config,
	registry *EngineRegistry,
	validator *moderation.Validator,
	slowMode *engine.SlowMode,
	roomRepo mongodb.RoomRepository,
	messageRepo mongodb.MessageRepository,
	donationRepo mongodb.DonationRepository,
	paymentsClient payments.Client,
	h *hub.Hub,
) DonationUsecase {
	return &donationUsecase{
		conf:         conf,
		registry:     registry,
		validator:    validator,
		slowMode:     slowMode,
		roomRepo:     roomRepo,
		messageRepo:  messageRepo,
		donationRepo: donationRepo,
		payments:     paymentsClient,
		hub:          h,
	}
}

func (uc *donationUsecase) CreateDonation(ctx context.Context, params CreateDonationParams) (*models.ChatMessage, error) {
	now := time.Now()

	room, err := uc.roomRepo.GetByID(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status(now) == models.RoomExpired {
		return nil, models.ErrRoomExpired
	}

	if ok, retry := uc.slowMode.Check(params.Session.UserID, now); !ok {
		return nil, &models.SlowModeError{RetryAfter: retry}
	}
	if len([]rune(params.Content)) > maxDonationContentLen {
		return nil, &models.RejectedError{Reason: "message too long"}
	}
	if verdict := uc.validator.Validate(params.Content); !verdict.Accepted {
		return nil, &models.RejectedError{Reason: verdict.Reason}
	}

	amount := params.Amount
	if amount < 0 {
		amount = 0
	}

	msg := models.ChatMessage{
		ID:     uuid.NewString(),
		RoomID: params.RoomID,
		Author: models.Author{
			UserID:    params.Session.UserID,
			Name:      params.Session.Name,
			AvatarURL: params.Session.AvatarURL,
		},
		RoleBadge:  params.Session.RoleBadge,
		Content:    params.Content,
		CreatedAt:  now,
		IsDonation: true,
		Amount:     amount,
		Status:     models.DonationPending,
	}

	if err := uc.donationRepo.Create(ctx, &models.Donation{
		MessageID: msg.ID,
		RoomID:    msg.RoomID,
		UserID:    msg.Author.UserID,
		Amount:    amount,
	}); err != nil {
		return nil, err
	}

	outcome := uc.registry.Get(params.RoomID).OnMessage(msg, now)
	if err := uc.messageRepo.Insert(ctx, &outcome.Message); err != nil {
		log.Errorw(ctx, "archive donation message", "error", err, "message_id", msg.ID)
	}
	uc.hub.BroadcastAll(outcome.Events)

	log.Infow(ctx, "donation created",
		"message_id", msg.ID,
		"room_id", msg.RoomID,
		"amount", amount)
	return &outcome.Message, nil
}

func (uc *donationUsecase) ConfirmDonation(ctx context.Context, params ConfirmDonationParams) error {
	donation, err := uc.donationRepo.GetByMessageID(ctx, params.MessageID)
	if err != nil {
		return err
	}

	amount := cast.ToFloat64(params.Amount)
	if amount <= 0 {
		amount = donation.Amount
	}

	if uc.conf.Payments.VerifyCharges && params.ChargeID != "" {
		charge, err := uc.payments.GetCharge(ctx, params.ChargeID)
		if err != nil {
			return fmt.Errorf("verify charge: %w", err)
		}
		if !charge.Confirmed() {
			return fmt.Errorf("charge %s not confirmed (status %s)", params.ChargeID, charge.Status)
		}
		amount = charge.Amount
	}

	flipped, err := uc.donationRepo.Confirm(ctx, params.MessageID, params.ChargeID, amount)
	if err != nil {
		return err
	}
	if !flipped {
		log.Infow(ctx, "donation already confirmed", "message_id", params.MessageID)
		return nil
	}

	now := time.Now()
	events, ok := uc.registry.Get(donation.RoomID).ConfirmDonation(params.MessageID, amount, now)
	if !ok {
		// The live state no longer knows this message (restart or room
		// teardown); the record is confirmed, there is nothing to animate.
		log.Warnw(ctx, "confirmed donation has no live message",
			"message_id", params.MessageID,
			"room_id", donation.RoomID)
		return nil
	}

	for _, ev := range events {
		if ev.Type == models.EventMessage && ev.Message != nil {
			if err := uc.messageRepo.Update(ctx, ev.Message); err != nil {
				log.Errorw(ctx, "update archived donation", "error", err, "message_id", params.MessageID)
			}
		}
	}
	uc.hub.BroadcastAll(events)

	log.Infow(ctx, "donation confirmed",
		"message_id", params.MessageID,
		"amount", amount,
		"tier", engine.Classify(amount).Label)
	return nil
}
