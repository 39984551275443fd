package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

type wsChangeFeed struct {
	baseURL string
	dialer  *websocket.Dialer

	logger *logger.Logger
}

// NewWSChangeFeed constructs a websocket implementation of [ChangeFeed].
// When adapterCfg.WSAddress is empty the endpoint is derived from the HTTP
// address by swapping the scheme (http→ws, https→wss).
func NewWSChangeFeed(adapterCfg config.Adapter, logger *logger.Logger) (ChangeFeed, error) {
	raw := adapterCfg.WSAddress
	if raw == "" {
		httpURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
		if err != nil {
			return nil, fmt.Errorf("derive ws address: %w", err)
		}
		raw = strings.Replace(httpURL, "http", "ws", 1)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid ws address: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("ws address must use ws:// or wss://")
	}

	return &wsChangeFeed{
		baseURL: strings.TrimRight(u.String(), "/"),
		dialer:  websocket.DefaultDialer,
		logger:  logger,
	}, nil
}

// Subscribe implements [ChangeFeed]. It dials the change endpoint for
// collectionID and starts a reader goroutine that decodes
// [models.ChangeEvent] frames and forwards them to onChange. The goroutine
// exits when the connection is closed, either by Unsubscribe or by the
// server.
func (f *wsChangeFeed) Subscribe(ctx context.Context, collectionID string, onChange func(models.ChangeEvent)) (Subscription, error) {
	endpoint := f.baseURL + "/api/changes?collection_id=" + url.QueryEscape(collectionID)

	conn, _, err := f.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("subscribe changes: %w: %w", ErrUnreachable, err)
	}

	sub := &wsSubscription{conn: conn}

	go func() {
		for {
			var ev models.ChangeEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if !sub.closed() {
					f.logger.Warn().Err(err).
						Str("collection_id", collectionID).
						Msg("change feed connection lost")
				}
				return
			}
			onChange(ev)
		}
	}()

	return sub, nil
}

type wsSubscription struct {
	conn *websocket.Conn

	mu     sync.Mutex
	isDone bool
}

// Unsubscribe implements [Subscription]. It closes the underlying
// connection, which also stops the reader goroutine. Safe to call more than
// once.
func (s *wsSubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isDone {
		return
	}
	s.isDone = true
	_ = s.conn.Close()
}

func (s *wsSubscription) closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDone
}
