package service

import (
	"testing"
	"time"
)

func newFeed(instID string) *BookFeed {
	return NewBookFeed(NewConn("ws://unused", time.Second), instID)
}

func frame(instID, bidPx, bidSz, askPx, askSz string) []byte {
	return []byte(`{
		"arg": {"channel": "books5", "instId": "` + instID + `"},
		"data": [{
			"bids": [["` + bidPx + `", "` + bidSz + `", "0", "1"]],
			"asks": [["` + askPx + `", "` + askSz + `", "0", "1"]],
			"ts": "1647249413000"
		}]
	}`)
}

func TestTopOfBookFromFrame(t *testing.T) {
	f := newFeed("BTC-USDT")
	f.onMessage(frame("BTC-USDT", "100.5", "5", "100.6", "3"))

	snap, err := f.TopOfBook()
	if err != nil {
		t.Fatalf("top of book: %v", err)
	}
	if snap.BidPrice != 100.5 || snap.BidSize != 5 || snap.AskPrice != 100.6 || snap.AskSize != 3 {
		t.Fatalf("bad snapshot: %+v", snap)
	}
	if snap.Delta() != 2 {
		t.Fatalf("delta: got %v want 2", snap.Delta())
	}
	if snap.Ts != time.UnixMilli(1647249413000).UTC() {
		t.Fatalf("ts: %v", snap.Ts)
	}
}

func TestTopOfBookEmptyBeforeFirstFrame(t *testing.T) {
	f := newFeed("BTC-USDT")
	if _, err := f.TopOfBook(); err == nil {
		t.Fatal("expected empty book error before any frame")
	}
}

func TestTopOfBookRejectsCrossedBook(t *testing.T) {
	f := newFeed("BTC-USDT")
	f.onMessage(frame("BTC-USDT", "100.7", "5", "100.6", "3"))
	if _, err := f.TopOfBook(); err == nil {
		t.Fatal("expected crossed book error")
	}
}

func TestTopOfBookRejectsZeroSize(t *testing.T) {
	f := newFeed("BTC-USDT")
	f.onMessage(frame("BTC-USDT", "100.5", "0", "100.6", "3"))
	if _, err := f.TopOfBook(); err == nil {
		t.Fatal("expected non-positive size error")
	}
}

func TestFrameForOtherInstrumentIgnored(t *testing.T) {
	f := newFeed("BTC-USDT")
	f.onMessage(frame("ETH-USDT", "100.5", "5", "100.6", "3"))
	if _, err := f.TopOfBook(); err == nil {
		t.Fatal("frame for another instId must not fill the book")
	}
}

func TestPongIgnored(t *testing.T) {
	f := newFeed("BTC-USDT")
	f.onMessage([]byte("pong"))
	if _, err := f.TopOfBook(); err == nil {
		t.Fatal("pong must not fill the book")
	}
}
