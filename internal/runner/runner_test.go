package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"delta_bot/internal/models"
	healthsvc "delta_bot/internal/modules/health/service"
	recordersvc "delta_bot/internal/modules/recorder/service"
)

type fakeSampler struct {
	mu      sync.Mutex
	samples int
	evals   []models.Evaluation
	err     error
	block   chan struct{} // если не nil, Sample висит до закрытия
}

func (f *fakeSampler) Sample() (models.BookSnapshot, models.BookSnapshot, error) {
	f.mu.Lock()
	f.samples++
	block := f.block
	err := f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return models.BookSnapshot{}, models.BookSnapshot{}, err
	}
	return models.BookSnapshot{BidPrice: 100, BidSize: 5, AskPrice: 101, AskSize: 3},
		models.BookSnapshot{BidPrice: 100, BidSize: 7, AskPrice: 101, AskSize: 2}, nil
}

func (f *fakeSampler) Deltas() models.DeltaSeries {
	return models.DeltaSeries{Spot: []float64{2}, Perp: []float64{5}}
}

func (f *fakeSampler) AppendEval(ev models.Evaluation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals = append(f.evals, ev)
}

func (f *fakeSampler) sampleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.samples
}

func (f *fakeSampler) evalCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.evals)
}

type fakeEngine struct {
	ev    models.Evaluation
	calls int
}

func (f *fakeEngine) Evaluate(models.DeltaSeries) models.Evaluation {
	f.calls++
	return f.ev
}
func (f *fakeEngine) Describe() string { return "fake strategy" }
func (f *fakeEngine) Name() string     { return "fake" }

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) Send(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}
func (f *fakeNotifier) Sendf(format string, args ...any) { f.Send(format) }
func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func newTestRunner(s *fakeSampler, e *fakeEngine, n *fakeNotifier) *Runner {
	return New(time.Second, s, e, healthsvc.NewState(), n, recordersvc.Nop{})
}

func TestStepEvaluatesAndAppends(t *testing.T) {
	s := &fakeSampler{}
	e := &fakeEngine{ev: models.Evaluation{Signal: models.SignalFlat, Ready: true}}
	r := newTestRunner(s, e, &fakeNotifier{})

	r.Step(context.Background())

	if s.sampleCount() != 1 || e.calls != 1 || s.evalCount() != 1 {
		t.Fatalf("sample/eval/append: %d/%d/%d", s.sampleCount(), e.calls, s.evalCount())
	}
	if r.state.LastSample().IsZero() {
		t.Fatal("health lastSample not touched")
	}
}

func TestStepSkippedOnSampleError(t *testing.T) {
	s := &fakeSampler{err: errors.New("empty book")}
	e := &fakeEngine{}
	r := newTestRunner(s, e, &fakeNotifier{})

	r.Step(context.Background())

	if e.calls != 0 {
		t.Fatal("engine must not run on a skipped step")
	}
	if s.evalCount() != 0 {
		t.Fatal("nothing may be appended on a skipped step")
	}
	if !r.state.LastSample().IsZero() {
		t.Fatal("health must not be touched on a skipped step")
	}
}

func TestNotifyOnlyOnSignalEdge(t *testing.T) {
	s := &fakeSampler{}
	e := &fakeEngine{ev: models.Evaluation{Signal: models.SignalLong, Ready: true}}
	n := &fakeNotifier{}
	r := newTestRunner(s, e, n)

	r.Step(context.Background()) // Flat -> Long: уведомление
	r.Step(context.Background()) // Long -> Long: тишина
	if n.count() != 1 {
		t.Fatalf("notifications: got %d want 1", n.count())
	}

	e.ev.Signal = models.SignalFlat
	r.Step(context.Background()) // Long -> Flat: выходы не анонсируем
	if n.count() != 1 {
		t.Fatalf("notifications after flat: got %d want 1", n.count())
	}

	e.ev.Signal = models.SignalShort
	r.Step(context.Background()) // Flat -> Short: уведомление
	if n.count() != 2 {
		t.Fatalf("notifications after short: got %d want 2", n.count())
	}
}

func TestStepsNeverOverlap(t *testing.T) {
	block := make(chan struct{})
	s := &fakeSampler{block: block}
	e := &fakeEngine{ev: models.Evaluation{Signal: models.SignalFlat}}
	r := newTestRunner(s, e, &fakeNotifier{})

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		r.Step(context.Background())
		close(done)
	}()
	<-started

	// ждём, пока первый шаг повиснет внутри Sample
	deadline := time.Now().Add(time.Second)
	for s.sampleCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// перекрывающий тик должен вернуться сразу и ничего не семплировать
	r.Step(context.Background())
	if got := s.sampleCount(); got != 1 {
		t.Fatalf("overlapping tick sampled: count=%d", got)
	}

	close(block)
	<-done
}
