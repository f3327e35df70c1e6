package service

// PublicWSURL — публичный стрим OKX (books*, tickers и т.п.).
const PublicWSURL = "wss://ws.okx.com:8443/ws/v5/public"
