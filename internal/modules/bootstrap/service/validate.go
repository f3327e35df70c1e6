package service

import (
	"context"
	"fmt"

	"delta_bot/internal/modules/config"
	okxclient "delta_bot/internal/modules/okx_client/service"
)

// Validator один раз на старте проверяет имена рынков против REST.
// В рантайме ядро имена не перепроверяет.
type Validator struct {
	cfg *config.Config
	okx *okxclient.Client
}

func NewValidator(cfg *config.Config, okx *okxclient.Client) *Validator {
	return &Validator{cfg: cfg, okx: okx}
}

func (v *Validator) ValidateMarkets(ctx context.Context) error {
	valid, err := v.okx.ValidInstruments(ctx)
	if err != nil {
		return fmt.Errorf("load instruments: %w", err)
	}
	if _, ok := valid[v.cfg.SpotMarket]; !ok {
		return fmt.Errorf("invalid spot market %q", v.cfg.SpotMarket)
	}
	if _, ok := valid[v.cfg.PerpFuture]; !ok {
		return fmt.Errorf("invalid perp future %q", v.cfg.PerpFuture)
	}
	return nil
}
