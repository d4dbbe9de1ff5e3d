package usecase

import (
	"context"
	"errors"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/internal/repo/mongodb"
	"github.com/fluxofest/live-chat/pkg/util"
)

const (
	defaultRoomTTL = 24 * time.Hour
	maxRoomTTL     = 7 * 24 * time.Hour
)

type CreateRoomParams struct {
	Name      string
	Emoji     string
	Password  string
	TTL       time.Duration
	CreatedBy string
}

// RoomView is a ChatRoom plus its derived status.
type RoomView struct {
	models.ChatRoom
	Status      models.RoomStatus `json:"status"`
	HasPassword bool              `json:"has_password"`
}

type RoomUsecase interface {
	CreateRoom(ctx context.Context, params CreateRoomParams) (*RoomView, error)
	GetRoom(ctx context.Context, id string) (*RoomView, error)
	ListRooms(ctx context.Context) ([]*RoomView, error)
	// JoinRoom records membership after checking the password and expiry.
	JoinRoom(ctx context.Context, roomID, userID, password string) error
}

type roomUsecase struct {
	roomRepo mongodb.RoomRepository
	registry *EngineRegistry
}

func NewRoomUsecase(roomRepo mongodb.RoomRepository, registry *EngineRegistry) RoomUsecase {
	return &roomUsecase{
		roomRepo: roomRepo,
		registry: registry,
	}
}

func (uc *roomUsecase) CreateRoom(ctx context.Context, params CreateRoomParams) (*RoomView, error) {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultRoomTTL
	}
	if ttl > maxRoomTTL {
		ttl = maxRoomTTL
	}

	room := &models.ChatRoom{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Emoji:     params.Emoji,
		CreatedBy: params.CreatedBy,
		ExpiresAt: time.Now().Add(ttl),
	}

	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		room.PasswordHash = string(hash)
	}

	if err := uc.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	// The creator is a member from the start.
	if err := uc.roomRepo.AddMember(ctx, &models.RoomMember{RoomID: room.ID, UserID: params.CreatedBy}); err != nil {
		log.Errorw(ctx, "add creator membership", "error", err, "room_id", room.ID)
	}

	log.Infow(ctx, "room created", "room_id", room.ID, "expires_at", room.ExpiresAt)
	return uc.view(room), nil
}

func (uc *roomUsecase) GetRoom(ctx context.Context, id string) (*RoomView, error) {
	room, err := uc.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(room), nil
}

func (uc *roomUsecase) ListRooms(ctx context.Context) ([]*RoomView, error) {
	rooms, err := uc.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return util.ConvertList(rooms, uc.view), nil
}

func (uc *roomUsecase) JoinRoom(ctx context.Context, roomID, userID, password string) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.Status(time.Now()) == models.RoomExpired {
		return models.ErrRoomExpired
	}
	if room.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return models.ErrWrongPassword
			}
			return err
		}
	}
	return uc.roomRepo.AddMember(ctx, &models.RoomMember{RoomID: roomID, UserID: userID})
}

func (uc *roomUsecase) view(room *models.ChatRoom) *RoomView {
	return &RoomView{
		ChatRoom:    *room,
		Status:      room.Status(time.Now()),
		HasPassword: room.HasPassword(),
	}
}
