package service

import (
	"math"
	"testing"

	"delta_bot/internal/models"
)

func bundle(spot, perp []float64) models.DeltaSeries {
	return models.DeltaSeries{Spot: spot, Perp: perp}
}

func zeros(n int) []float64 { return make([]float64, n) }

func TestBollingerRejectsBadParams(t *testing.T) {
	if _, err := NewBollinger(1, 2); err == nil {
		t.Fatal("expected window error")
	}
	if _, err := NewBollinger(20, 0); err == nil {
		t.Fatal("expected std multiplier error")
	}
}

func TestBollingerNotEnoughSamples(t *testing.T) {
	b, err := NewBollinger(20, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ev := b.Evaluate(bundle([]float64{1, 2}, []float64{0, 0}))
	if ev.Signal != models.SignalFlat {
		t.Fatalf("signal: got %s want FLAT", ev.Signal)
	}
	if ev.Ready {
		t.Fatal("evaluation must not be ready below window")
	}
}

// Сценарий из ручного расчёта: окно [1,1,10], mean=4,
// выборочное std = sqrt(27); 10 не пробивает mean+2*std — FLAT.
func TestBollingerWindowTailScenario(t *testing.T) {
	b, _ := NewBollinger(3, 2)
	ev := b.Evaluate(bundle([]float64{1, 1, 1, 1, 10}, zeros(5)))

	wantMean := 4.0
	wantStd := math.Sqrt(27)
	if math.Abs(ev.Mean-wantMean) > 1e-12 {
		t.Fatalf("mean: got %v want %v", ev.Mean, wantMean)
	}
	if math.Abs(ev.Upper-(wantMean+2*wantStd)) > 1e-12 {
		t.Fatalf("upper: got %v want %v", ev.Upper, wantMean+2*wantStd)
	}
	if math.Abs(ev.Lower-(wantMean-2*wantStd)) > 1e-12 {
		t.Fatalf("lower: got %v want %v", ev.Lower, wantMean-2*wantStd)
	}
	if ev.Signal != models.SignalFlat {
		t.Fatalf("signal: got %s want FLAT", ev.Signal)
	}
	if !ev.Ready {
		t.Fatal("expected ready evaluation")
	}
}

// mean=10/3, std=sqrt(100/3); 10 > mean+std — SHORT.
func TestBollingerShortBreakout(t *testing.T) {
	b, _ := NewBollinger(3, 1)
	ev := b.Evaluate(bundle([]float64{0, 0, 10}, zeros(3)))
	if ev.Signal != models.SignalShort {
		t.Fatalf("signal: got %s want SHORT", ev.Signal)
	}
}

func TestBollingerLongBreakout(t *testing.T) {
	b, _ := NewBollinger(3, 1)
	ev := b.Evaluate(bundle([]float64{0, 0, -10}, zeros(3)))
	if ev.Signal != models.SignalLong {
		t.Fatalf("signal: got %s want LONG", ev.Signal)
	}
}

// Все значения равны: std=0, последняя точка лежит ровно на обеих
// полосах. Равенство не считается пробоем — FLAT.
func TestBollingerTieResolvesFlat(t *testing.T) {
	b, _ := NewBollinger(3, 2)
	ev := b.Evaluate(bundle([]float64{5, 5, 5}, zeros(3)))
	if ev.Signal != models.SignalFlat {
		t.Fatalf("signal: got %s want FLAT", ev.Signal)
	}
	if ev.Upper != 5 || ev.Lower != 5 {
		t.Fatalf("bands: got %v/%v want 5/5", ev.Upper, ev.Lower)
	}
}

// combined — поэлементная сумма обеих дельта-серий.
func TestBollingerCombinesBothMarkets(t *testing.T) {
	b, _ := NewBollinger(3, 1)
	// combined = [0, 0, 10], но разнесено по двум рынкам
	ev := b.Evaluate(bundle([]float64{0, 0, 4}, []float64{0, 0, 6}))
	if ev.Signal != models.SignalShort {
		t.Fatalf("signal: got %s want SHORT", ev.Signal)
	}
}

func TestBollingerDeterministic(t *testing.T) {
	b, _ := NewBollinger(3, 2)
	s := bundle([]float64{1, -2, 3, -4, 5}, []float64{2, 1, -1, 3, -2})
	first := b.Evaluate(s)
	for i := 0; i < 10; i++ {
		if got := b.Evaluate(s); got != first {
			t.Fatalf("call %d: got %+v want %+v", i, got, first)
		}
	}
}

func TestBollingerMisalignedSeriesPanics(t *testing.T) {
	b, _ := NewBollinger(3, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on misaligned series")
		}
	}()
	b.Evaluate(bundle([]float64{1, 2, 3}, []float64{1, 2}))
}
