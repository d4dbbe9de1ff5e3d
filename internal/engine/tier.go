package engine

import "time"

// Tier ranks a confirmed donation by amount.
type Tier int

const (
	TierNone Tier = iota
	TierBasic
	TierVIP
	TierKing
)

func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "Basic"
	case TierVIP:
		return "VIP"
	case TierKing:
		return "King"
	default:
		return "None"
	}
}

// TierInfo carries the display and pinning rules for a donation tier.
type TierInfo struct {
	Tier            Tier
	Label           string
	PinDuration     time.Duration
	OverlayEligible bool
}

// Tier thresholds in currency units (BRL). Boundary amounts belong to the
// higher tier: Classify(50) is King, not VIP.
const (
	basicThreshold = 5
	vipThreshold   = 20
	kingThreshold  = 50
)

// Classify maps a donation amount to its tier. Amounts below the basic
// threshold yield TierNone: the message stays a plain chat line even when
// flagged as a donation.
func Classify(amount float64) TierInfo {
	switch {
	case amount >= kingThreshold:
		return TierInfo{Tier: TierKing, Label: "King", PinDuration: 30 * time.Minute, OverlayEligible: true}
	case amount >= vipThreshold:
		return TierInfo{Tier: TierVIP, Label: "VIP", PinDuration: 10 * time.Minute}
	case amount >= basicThreshold:
		return TierInfo{Tier: TierBasic, Label: "Basic", PinDuration: 2 * time.Minute}
	default:
		return TierInfo{Tier: TierNone, Label: "None"}
	}
}
