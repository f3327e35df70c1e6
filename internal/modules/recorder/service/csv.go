package service

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
)

// заголовок повторяет формат оригинального тик-логгера
var csvHeader = []string{
	"utc_timestamp",
	"spot_bid_price", "spot_ask_price", "spot_bid_volume", "spot_ask_volume",
	"perp_bid_price", "perp_ask_price", "perp_bid_volume", "perp_ask_volume",
}

// CSV пишет по строке на удачный шаг семплирования. Пишет только
// драйвер, из одной горутины.
type CSV struct {
	file *os.File
	w    *csv.Writer
}

func NewCSV(dir, name string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, errors.Wrap(err, "create logfile")
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "write header")
	}
	w.Flush()
	return &CSV{file: f, w: w}, nil
}

func (c *CSV) Record(_ context.Context, row models.TickRow) error {
	rec := []string{
		row.Ts.UTC().Format(time.RFC3339Nano),
		ftoa(row.SpotBidPrice), ftoa(row.SpotAskPrice), ftoa(row.SpotBidSize), ftoa(row.SpotAskSize),
		ftoa(row.PerpBidPrice), ftoa(row.PerpAskPrice), ftoa(row.PerpBidSize), ftoa(row.PerpAskSize),
	}
	if err := c.w.Write(rec); err != nil {
		return errors.Wrap(err, "write row")
	}
	c.w.Flush()
	return errors.Wrap(c.w.Error(), "flush")
}

func (c *CSV) Close() error {
	c.w.Flush()
	return c.file.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
