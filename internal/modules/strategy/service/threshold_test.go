package service

import (
	"testing"

	"delta_bot/internal/models"

	"delta_bot/internal/modules/config"
)

func TestThresholdSignals(t *testing.T) {
	th, err := NewThreshold(10)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cases := []struct {
		spot, perp float64
		want       models.SignalState
	}{
		{6, 5, models.SignalShort},  // 11 > 10
		{-6, -5, models.SignalLong}, // -11 < -10
		{5, 5, models.SignalFlat},   // ровно на пороге — не пробой
		{-5, -5, models.SignalFlat},
		{1, 2, models.SignalFlat},
	}
	for _, tc := range cases {
		ev := th.Evaluate(bundle([]float64{tc.spot}, []float64{tc.perp}))
		if ev.Signal != tc.want {
			t.Fatalf("spot=%v perp=%v: got %s want %s", tc.spot, tc.perp, ev.Signal, tc.want)
		}
	}
}

func TestThresholdEmptySeries(t *testing.T) {
	th, _ := NewThreshold(10)
	ev := th.Evaluate(bundle(nil, nil))
	if ev.Signal != models.SignalFlat || ev.Ready {
		t.Fatalf("empty series: got %+v", ev)
	}
}

func TestFactorySelectsEngine(t *testing.T) {
	cfg := &config.Config{Strategy: "bollinger", BBandLength: 20, BBandStd: 3}
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if e.Name() != "bollinger_delta" {
		t.Fatalf("engine name: got %s", e.Name())
	}

	cfg = &config.Config{Strategy: "threshold", ThresholdLimit: 25}
	e, err = NewEngine(cfg)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if e.Name() != "delta_threshold" {
		t.Fatalf("engine name: got %s", e.Name())
	}

	if _, err := NewEngine(&config.Config{Strategy: "nope"}); err == nil {
		t.Fatal("expected unknown strategy error")
	}
}
