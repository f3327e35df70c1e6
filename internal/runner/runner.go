package runner

import (
	"context"
	"log"
	"sync"
	"time"

	"delta_bot/internal/models"
	healthsvc "delta_bot/internal/modules/health/service"
	recordersvc "delta_bot/internal/modules/recorder/service"
	strategysvc "delta_bot/internal/modules/strategy/service"
	"delta_bot/internal/notify"

	"github.com/opentracing/opentracing-go"
)

// Sampler — то, что драйверу нужно от агрегатора.
type Sampler interface {
	Sample() (spot, perp models.BookSnapshot, err error)
	Deltas() models.DeltaSeries
	AppendEval(models.Evaluation)
}

// Runner — периодический драйвер конвейера. Один шаг:
// Idle → Sampling → (Skipped | Appended) → Evaluating → Idle.
// Шаги никогда не перекрываются: guard жёстче, чем просто интервал тика.
type Runner struct {
	interval time.Duration
	agg      Sampler
	engine   strategysvc.Engine
	state    *healthsvc.State
	n        notify.Notifier
	rec      recordersvc.Recorder

	stepMu sync.Mutex // non-reentrant guard шага
	last   models.SignalState
}

func New(
	interval time.Duration,
	agg Sampler,
	engine strategysvc.Engine,
	state *healthsvc.State,
	n notify.Notifier,
	rec recordersvc.Recorder,
) *Runner {
	return &Runner{
		interval: interval,
		agg:      agg,
		engine:   engine,
		state:    state,
		n:        n,
		rec:      rec,
	}
}

func (r *Runner) Start(ctx context.Context) {
	log.Printf("[RUNNER] driver started: %s, interval=%s", r.engine.Describe(), r.interval)
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[RUNNER] driver stopped")
			return
		case <-t.C:
			r.Step(ctx)
		}
	}
}

// Step выполняет один шаг семплирования-оценки.
func (r *Runner) Step(ctx context.Context) {
	if !r.stepMu.TryLock() {
		// предыдущий шаг ещё не дошёл до Idle — этот тик пропускаем
		log.Printf("[RUNNER] tick overlap, skip")
		return
	}
	defer r.stepMu.Unlock()

	span := opentracing.StartSpan("sampling_step")
	defer span.Finish()

	spot, perp, err := r.agg.Sample()
	if err != nil {
		// пропущенный шаг: ни одна серия не выросла, сигнал прежний
		span.SetTag("skipped", true)
		log.Printf("[AGG] step skipped: %v", err)
		return
	}

	ev := r.engine.Evaluate(r.agg.Deltas())
	r.agg.AppendEval(ev)
	span.SetTag("signal", ev.Signal.String())

	now := time.Now().UTC()
	r.state.TouchSample(now)

	if err := r.rec.Record(ctx, models.TickRow{
		Ts:           now,
		SpotBidPrice: spot.BidPrice, SpotAskPrice: spot.AskPrice,
		SpotBidSize: spot.BidSize, SpotAskSize: spot.AskSize,
		PerpBidPrice: perp.BidPrice, PerpAskPrice: perp.AskPrice,
		PerpBidSize: perp.BidSize, PerpAskSize: perp.AskSize,
	}); err != nil {
		// best effort: лог и едем дальше
		log.Printf("[REC] %v", err)
	}

	r.notifyEdge(ev.Signal)
}

// notifyEdge шлёт сообщение только на фронте сигнала — как вертикальные
// отметки входов в оригинале, а не на каждом шаге.
func (r *Runner) notifyEdge(sig models.SignalState) {
	if sig == r.last {
		return
	}
	prev := r.last
	r.last = sig
	if sig == models.SignalFlat {
		return
	}
	r.n.Sendf("📶 %s → %s | %s", prev, sig, r.engine.Describe())
}
