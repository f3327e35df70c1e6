package service

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"delta_bot/internal/models"

	"github.com/bytedance/sonic"
)

const booksChannel = "books5"

type level struct {
	price float64
	size  float64
}

// BookFeed подписывается на книгу одного инструмента поверх своего Conn
// и держит последний снимок верхних уровней. Агрегатор дёргает
// TopOfBook раз в шаг семплирования.
type BookFeed struct {
	conn   *Conn
	instID string

	mu   sync.RWMutex
	bids []level
	asks []level
	ts   time.Time
}

func NewBookFeed(conn *Conn, instID string) *BookFeed {
	f := &BookFeed{conn: conn, instID: instID}
	conn.OnMessage(f.onMessage)
	conn.OnOpen(f.subscribe)
	return f
}

// Start поднимает сессию; дальше Conn живёт сам.
func (f *BookFeed) Start() error { return f.conn.Connect() }

func (f *BookFeed) InstID() string { return f.instID }

func (f *BookFeed) Connected() bool { return f.conn.State() == StateConnected }

func (f *BookFeed) subscribe() {
	sub := map[string]any{
		"op": "subscribe",
		"args": []map[string]string{
			{"channel": booksChannel, "instId": f.instID},
		},
	}
	b, err := sonic.Marshal(sub)
	if err != nil {
		log.Printf("[WS] subscribe marshal %s: %v", f.instID, err)
		return
	}
	f.conn.Send(b)
}

func (f *BookFeed) onMessage(msg []byte) {
	if len(msg) == 4 && string(msg) == "pong" {
		return
	}

	var frame struct {
		Arg struct {
			Channel string `json:"channel"`
			InstID  string `json:"instId"`
		} `json:"arg"`
		Data []struct {
			Bids [][]string `json:"bids"`
			Asks [][]string `json:"asks"`
			Ts   string     `json:"ts"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(msg, &frame); err != nil {
		return
	}
	if frame.Arg.Channel != booksChannel || frame.Arg.InstID != f.instID || len(frame.Data) == 0 {
		return
	}

	// books5 шлёт полный снимок топ-5 уровней, берём последний кадр
	d := frame.Data[len(frame.Data)-1]
	bids := parseLevels(d.Bids)
	asks := parseLevels(d.Asks)

	ts := time.Now().UTC()
	if ms, err := strconv.ParseInt(d.Ts, 10, 64); err == nil {
		ts = time.UnixMilli(ms).UTC()
	}

	f.mu.Lock()
	f.bids = bids
	f.asks = asks
	f.ts = ts
	f.mu.Unlock()
}

// TopOfBook — примитив выборки топа книги. Пустой, перекошенный или
// кривой стакан — ошибка; шаг семплирования целиком пропускается выше.
func (f *BookFeed) TopOfBook() (models.BookSnapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.bids) == 0 || len(f.asks) == 0 {
		return models.BookSnapshot{}, fmt.Errorf("%s: empty book", f.instID)
	}
	bb, ba := f.bids[0], f.asks[0]
	if bb.size <= 0 || ba.size <= 0 {
		return models.BookSnapshot{}, fmt.Errorf("%s: non-positive top size", f.instID)
	}
	if bb.price >= ba.price {
		return models.BookSnapshot{}, fmt.Errorf("%s: crossed book %.8f/%.8f", f.instID, bb.price, ba.price)
	}

	return models.BookSnapshot{
		InstID:   f.instID,
		BidPrice: bb.price,
		BidSize:  bb.size,
		AskPrice: ba.price,
		AskSize:  ba.size,
		Ts:       f.ts,
	}, nil
}

// формат уровня OKX: [price, size, liquidatedOrders, orderCount]
func parseLevels(rows [][]string) []level {
	out := make([]level, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		price, err1 := strconv.ParseFloat(row[0], 64)
		size, err2 := strconv.ParseFloat(row[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, level{price: price, size: size})
	}
	return out
}
