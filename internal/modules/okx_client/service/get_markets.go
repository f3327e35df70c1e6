package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

type instrument struct {
	InstType string `json:"instType"`
	InstID   string `json:"instId"`
	State    string `json:"state"`
}

// ValidInstruments возвращает множество имён live-инструментов типов
// SPOT и SWAP. Против него на старте проверяются spot_market/perp_future.
func (c *Client) ValidInstruments(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, instType := range []string{"SPOT", "SWAP"} {
		list, err := c.fetchInstruments(ctx, instType)
		if err != nil {
			return nil, errors.Wrap(err, "fetch instruments "+instType)
		}
		for _, inst := range list {
			if inst.State != "" && inst.State != "live" {
				continue
			}
			out[inst.InstID] = struct{}{}
		}
	}
	return out, nil
}

func (c *Client) fetchInstruments(ctx context.Context, instType string) ([]instrument, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		baseURL+"/api/v5/public/instruments?instType="+url.QueryEscape(instType),
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Code string       `json:"code"`
		Msg  string       `json:"msg"`
		Data []instrument `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if payload.Code != "0" {
		return nil, errors.Errorf("okx error %s: %s", payload.Code, payload.Msg)
	}
	return payload.Data, nil
}
