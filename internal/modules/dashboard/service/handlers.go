package service

import (
	"net/http"

	aggsvc "delta_bot/internal/modules/aggregator/service"
	strategysvc "delta_bot/internal/modules/strategy/service"

	"github.com/bytedance/sonic"
)

// Handlers отдаёт снимки серий и последний сигнал как JSON —
// всё, что нужно внешней отрисовке. Только чтение, никаких мутаций.
type Handlers struct {
	agg    *aggsvc.Aggregator
	engine strategysvc.Engine
}

func NewHandlers(agg *aggsvc.Aggregator, engine strategysvc.Engine) *Handlers {
	return &Handlers{agg: agg, engine: engine}
}

func (h *Handlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/series", h.series)
	mux.HandleFunc("/api/signal", h.signal)
	mux.HandleFunc("/api/strategy", h.strategy)
	return mux
}

func (h *Handlers) series(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.agg.Snapshot())
}

func (h *Handlers) signal(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.agg.LastEval()
	writeJSON(w, map[string]any{
		"evaluated": ok,
		"signal":    ev.Signal.String(),
		"eval":      ev,
	})
}

func (h *Handlers) strategy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":     h.engine.Name(),
		"describe": h.engine.Describe(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
