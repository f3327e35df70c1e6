package service

import (
	"net/http"
	"time"
)

const baseURL = "https://www.okx.com"

// Client — публичный REST OKX. Используется один раз на старте для
// валидации имён рынков; в рантайме ядро к REST не ходит.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}
