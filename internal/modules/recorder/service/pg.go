package service

import (
	"context"

	"delta_bot/internal/models"
	"delta_bot/pkg/db"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const createTicksTable = `
create table if not exists book_ticks (
	ts              timestamptz not null,
	spot_bid_price  double precision not null,
	spot_ask_price  double precision not null,
	spot_bid_volume double precision not null,
	spot_ask_volume double precision not null,
	perp_bid_price  double precision not null,
	perp_ask_price  double precision not null,
	perp_bid_volume double precision not null,
	perp_ask_volume double precision not null
)`

const insertTick = `
insert into book_ticks (
	ts,
	spot_bid_price, spot_ask_price, spot_bid_volume, spot_ask_volume,
	perp_bid_price, perp_ask_price, perp_bid_volume, perp_ask_volume
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Pg пишет тики в Postgres через tx-менеджер.
type Pg struct {
	tm db.TxManager
}

func NewPg(ctx context.Context, tm db.TxManager) (*Pg, error) {
	err := tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createTicksTable)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "ensure book_ticks table")
	}
	return &Pg{tm: tm}, nil
}

func (p *Pg) Record(ctx context.Context, row models.TickRow) error {
	err := p.tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertTick,
			row.Ts,
			row.SpotBidPrice, row.SpotAskPrice, row.SpotBidSize, row.SpotAskSize,
			row.PerpBidPrice, row.PerpAskPrice, row.PerpBidSize, row.PerpAskSize,
		)
		return err
	})
	return errors.Wrap(err, "insert tick")
}

func (p *Pg) Close() error { return nil }
