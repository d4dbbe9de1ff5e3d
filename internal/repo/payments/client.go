package payments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/models"
	"github.com/fluxofest/live-chat/pkg/util"
)

// Charge is a payment-provider charge, looked up when webhook verification
// is enabled.
type Charge struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

var confirmedStatuses = []string{"succeeded", "paid"}

func (c Charge) Confirmed() bool {
	return util.SliceIncludes(confirmedStatuses, c.Status)
}

type Client interface {
	GetCharge(ctx context.Context, chargeID string) (*Charge, error)
}

type client struct {
	http *resty.Client
}

func NewClient(cfg *config.Config) Client {
	c := util.NewRestyClient().
		SetBaseURL(cfg.Payments.BaseURL)
	if cfg.Payments.APIKey != "" {
		c.SetAuthToken(cfg.Payments.APIKey)
	}
	return &client{http: c}
}

func (c *client) GetCharge(ctx context.Context, chargeID string) (*Charge, error) {
	var charge Charge
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&charge).
		SetPathParam("id", chargeID).
		Get("/v1/charges/{id}")
	if err != nil {
		return nil, fmt.Errorf("get charge %s: %w", chargeID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get charge %s: status %d", chargeID, resp.StatusCode())
	}
	return &charge, nil
}
