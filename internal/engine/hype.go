package engine

import (
	"time"

	"github.com/fluxofest/live-chat/internal/models"
)

const (
	hypeMax           = 100.0
	hypeMessagePoints = 0.5
	hypeDecayPerTick  = 0.5
	donationWeight    = 0.5
)

// HypeMeter is the two-state engagement machine. In normal mode the level
// climbs with chat activity and decays every tick; reaching 100 enters fluxo
// mode, which freezes the meter for a fixed dwell and then resets it to zero.
// There is no early exit from fluxo.
type HypeMeter struct {
	level       float64
	mode        models.EngagementMode
	fluxoEndsAt time.Time
	dwell       time.Duration
}

func NewHypeMeter(dwell time.Duration) *HypeMeter {
	return &HypeMeter{
		mode:  models.ModeNormal,
		dwell: dwell,
	}
}

// MessagePoints returns the hype contribution of one accepted message.
// Pending donations count as plain messages until confirmed.
func MessagePoints(msg models.ChatMessage) float64 {
	if msg.IsDonation && msg.Status == models.DonationConfirmed {
		return msg.Amount * donationWeight
	}
	return hypeMessagePoints
}

// DonationPoints returns the hype contribution of a confirmed amount.
func DonationPoints(amount float64) float64 {
	return amount * donationWeight
}

// Boost raises the level while in normal mode, capped at 100. It returns
// true when the boost saturates the meter and fluxo mode is entered.
// Boosts during fluxo are absorbed without effect.
func (h *HypeMeter) Boost(points float64, now time.Time) bool {
	if h.mode == models.ModeFluxo {
		return false
	}
	h.level += points
	if h.level < hypeMax {
		return false
	}
	h.level = hypeMax
	h.mode = models.ModeFluxo
	h.fluxoEndsAt = now.Add(h.dwell)
	return true
}

// Tick advances the meter one decay step. In normal mode the level drops by
// the decay rate, floored at zero. In fluxo mode nothing decays; once the
// dwell elapses the meter returns to normal with the level reset to zero,
// and Tick returns true.
func (h *HypeMeter) Tick(now time.Time) bool {
	if h.mode == models.ModeFluxo {
		if now.Before(h.fluxoEndsAt) {
			return false
		}
		h.mode = models.ModeNormal
		h.level = 0
		h.fluxoEndsAt = time.Time{}
		return true
	}
	h.level -= hypeDecayPerTick
	if h.level < 0 {
		h.level = 0
	}
	return false
}

// Status snapshots the meter.
func (h *HypeMeter) Status() models.HypeStatus {
	st := models.HypeStatus{
		Level: h.level,
		Mode:  h.mode,
	}
	if h.mode == models.ModeFluxo {
		ends := h.fluxoEndsAt
		st.FluxoEndsAt = &ends
	}
	return st
}
