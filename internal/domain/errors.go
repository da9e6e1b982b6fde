package domain

import "errors"

var (
	ErrWatchlistNotFound  = errors.New("watchlist entry not found")
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
	ErrChatUnavailable    = errors.New("chat service unavailable")
)
