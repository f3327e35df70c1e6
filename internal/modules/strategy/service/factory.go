package service

import (
	"fmt"

	"delta_bot/internal/modules/config"
)

func NewEngine(cfg *config.Config) (Engine, error) {
	switch cfg.Strategy {
	case "bollinger":
		return NewBollinger(cfg.BBandLength, cfg.BBandStd)
	case "threshold":
		return NewThreshold(cfg.ThresholdLimit)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}
