package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/internal/utils"
	"github.com/nickers/quickshop/models"
)

type httpRemoteStore struct {
	client       *utils.HTTPClient
	probeTimeout time.Duration

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.Adapter, logger *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpRemoteStore{
		client:       client,
		probeTimeout: adapterCfg.ProbeTimeout,
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// wireItem is the JSON shape of an item on the wire. Server ids are plain
// strings there; the tagged [models.ItemID] origin only exists client-side.
type wireItem struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	Name         string    `json:"name"`
	Quantity     *string   `json:"quantity"`
	Note         *string   `json:"note"`
	IsBought     bool      `json:"is_bought"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w wireItem) toModel() models.Item {
	return models.Item{
		ID:           models.ServerID(w.ID),
		CollectionID: w.CollectionID,
		Name:         w.Name,
		Quantity:     w.Quantity,
		Note:         w.Note,
		IsBought:     w.IsBought,
		SortOrder:    w.SortOrder,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func toModels(wire []wireItem) []models.Item {
	items := make([]models.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.toModel())
	}
	return items
}

// patchBody flattens an [models.ItemPatch] into the partial-update JSON the
// backend expects: only touched fields appear, and a cleared nullable field
// appears as an explicit null.
func patchBody(patch models.ItemPatch) map[string]any {
	body := make(map[string]any, 5)
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.SetQuantity {
		body["quantity"] = patch.Quantity
	}
	if patch.SetNote {
		body["note"] = patch.Note
	}
	if patch.IsBought != nil {
		body["is_bought"] = *patch.IsBought
	}
	if patch.SortOrder != nil {
		body["sort_order"] = *patch.SortOrder
	}
	return body
}

// ListItems implements [RemoteStore]. It GETs
// GET /api/collections/{id}/items and decodes the ordered item slice.
func (h *httpRemoteStore) ListItems(ctx context.Context, collectionID string) ([]models.Item, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/collections/" + url.PathEscape(collectionID) + "/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var wire []wireItem
	if err = json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("decode list items response: %w", err)
	}

	return toModels(wire), nil
}

// CreateItem implements [RemoteStore]. It POSTs the DTO to POST /api/items
// and returns the created record including the server-assigned id.
func (h *httpRemoteStore) CreateItem(ctx context.Context, dto models.CreateItemDTO) (models.Item, error) {
	var wire wireItem

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(dto).
		SetResult(&wire).
		Post("/api/items")
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return wire.toModel(), nil
}

// UpdateItem implements [RemoteStore]. It PATCHes the touched fields to
// PATCH /api/items/{id}. Returns [ErrNotFound] (wrapped) on HTTP 404 and
// [ErrConflict] (wrapped) on HTTP 409.
func (h *httpRemoteStore) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	var wire wireItem

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patchBody(patch)).
		SetResult(&wire).
		Patch("/api/items/" + url.PathEscape(id))
	if err != nil {
		return models.Item{}, fmt.Errorf("update item request: %w: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return wire.toModel(), nil
}

// DeleteItem implements [RemoteStore]. It sends DELETE /api/items/{id}.
func (h *httpRemoteStore) DeleteItem(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/items/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete item request: %w: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp)
}

// ReorderItems implements [RemoteStore]. It POSTs all new sort orders to
// POST /api/items/reorder in a single call, so a reorder either persists
// fully or not at all.
func (h *httpRemoteStore) ReorderItems(ctx context.Context, entries []models.ReorderEntry) error {
	type wireEntry struct {
		ID        string `json:"id"`
		SortOrder int    `json:"sort_order"`
	}
	wire := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		wire = append(wire, wireEntry{ID: e.ID.Value, SortOrder: e.SortOrder})
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"items": wire}).
		Post("/api/items/reorder")
	if err != nil {
		return fmt.Errorf("reorder items request: %w: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp)
}

// BulkCreateItems implements [RemoteStore]. It POSTs the DTO batch to
// POST /api/items/bulk and decodes the created records in input order.
func (h *httpRemoteStore) BulkCreateItems(ctx context.Context, dtos []models.CreateItemDTO) ([]models.Item, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"items": dtos}).
		Post("/api/items/bulk")
	if err != nil {
		return nil, fmt.Errorf("bulk create request: %w: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var wire []wireItem
	if err = json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("decode bulk create response: %w", err)
	}

	return toModels(wire), nil
}

// Reachable implements [RemoteStore]. It sends a HEAD request to the health
// endpoint with a short timeout. Any HTTP response counts as reachable,
// including an authentication rejection: a 401 proves the network path
// works. Only a transport-level failure reports false.
func (h *httpRemoteStore) Reachable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, h.probeTimeout)
	defer cancel()

	_, err := h.client.R().
		SetContext(probeCtx).
		Head("/api/health")
	if err != nil {
		h.logger.Debug().Err(err).Msg("reachability probe failed")
		return false
	}

	return true
}
