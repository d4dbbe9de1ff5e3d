package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomExpired   = errors.New("room expired")
	ErrWrongPassword = errors.New("wrong room password")
	ErrNotFound      = errors.New("not found")
)

// RejectedError reports a moderation rejection with a user-facing reason.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("message rejected: %s", e.Reason)
}

// SlowModeError reports a send attempted inside the slow-mode window.
type SlowModeError struct {
	RetryAfter time.Duration
}

func (e *SlowModeError) Error() string {
	return fmt.Sprintf("slow mode: retry in %s", e.RetryAfter)
}
