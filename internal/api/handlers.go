package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/promostock/internal/api/middleware"
	"github.com/example/promostock/internal/command"
	"github.com/example/promostock/internal/domain/catalog"
	"github.com/example/promostock/internal/domain/sharing"
	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
	"github.com/example/promostock/internal/notification"
	"github.com/example/promostock/internal/query"
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	catalogSvc   *catalog.Service
	hub          *notification.Hub
	log          zerolog.Logger
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, catalogSvc *catalog.Service, hub *notification.Hub, log zerolog.Logger) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		catalogSvc:   catalogSvc,
		hub:          hub,
		log:          log,
	}
}

// Movement Handlers

// RecordMovement applies one stock movement. The acting employee comes from
// the session, never from the request body.
func (h *Handlers) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req stock.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.EmployeeID = middleware.GetEmployeeID(r.Context())

	movement, err := h.cmdHandler.Record(r.Context(), req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, movement)
}

// ApplyBatch applies one action/promoter pair across a set of items. Partial
// success is a normal 200 response; the body reports both outcome lists.
func (h *Handlers) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	var cmd command.ApplyBatch
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.EmployeeID = middleware.GetEmployeeID(r.Context())
	if len(cmd.Tuples) == 0 {
		respondJSONError(w, "Batch needs at least one tuple", http.StatusBadRequest)
		return
	}

	result := h.cmdHandler.ApplyBatch(r.Context(), cmd)
	respondJSON(w, http.StatusOK, result)
}

// Item Handlers

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.CreatedBy = middleware.GetEmployeeID(r.Context())

	item, err := h.catalogSvc.CreateItem(r.Context(), req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brand_id")
	if brandID == "" {
		respondJSONError(w, "brand_id is required", http.StatusBadRequest)
		return
	}

	items, err := h.queryHandler.ItemsByBrand(r.Context(), brandID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/items/")
	detail, err := h.queryHandler.ItemDetail(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/items/")

	var req catalog.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.catalogSvc.UpdateItem(r.Context(), id, req)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) SetItemActive(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/active")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogSvc.SetItemActive(r.Context(), id, req.IsActive); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item updated"})
}

func (h *Handlers) AddSize(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/sizes")

	var req catalog.SizeSpec
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	size, err := h.catalogSvc.AddSize(r.Context(), id, req.Size, req.Quantity)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, size)
}

func (h *Handlers) GetItemQuantities(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/quantities")

	quantities, err := h.queryHandler.ItemQuantities(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quantities)
}

func (h *Handlers) GetItemMovements(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/movements")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.queryHandler.MovementsByItem(r.Context(), id, limit, offset)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movements)
}

// WatchItem streams the item's updates as server-sent events until the
// client goes away. One subscriber per connection.
func (h *Handlers) WatchItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/watch")

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSONError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.hub.Subscribe(id, 16)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case update, ok := <-sub.Updates():
			if !ok {
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				h.log.Error().Err(err).Msg("failed to marshal item update")
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// Shared-item Handlers

func (h *Handlers) LinkSharedItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/items/"), "/share")

	var req struct {
		BrandID string `json:"brand_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.LinkSharedItem(r.Context(), command.LinkSharedItem{ItemID: id, BrandID: req.BrandID}); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Item linked"})
}

func (h *Handlers) UnlinkSharedItem(w http.ResponseWriter, r *http.Request) {
	rest := extractPathParam(r.URL.Path, "/items/")
	parts := strings.SplitN(rest, "/share/", 2)
	if len(parts) != 2 || parts[1] == "" {
		respondJSONError(w, "Brand id is required", http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.UnlinkSharedItem(r.Context(), command.UnlinkSharedItem{ItemID: parts[0], BrandID: parts[1]}); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item unlinked"})
}

// Promoter Handlers

func (h *Handlers) GetPromoters(w http.ResponseWriter, r *http.Request) {
	promoters, err := h.queryHandler.Promoters(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, promoters)
}

func (h *Handlers) CreatePromoter(w http.ResponseWriter, r *http.Request) {
	var promoter store.Promoter
	if err := json.NewDecoder(r.Body).Decode(&promoter); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	promoter.CreatedBy = middleware.GetEmployeeID(r.Context())

	created, err := h.catalogSvc.CreatePromoter(r.Context(), &promoter)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) SetPromoterActive(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/promoters/"), "/active")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogSvc.SetPromoterActive(r.Context(), id, req.IsActive); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Promoter updated"})
}

// GetHoldings reports what a promoter currently has checked out, replayed
// from the movement log.
func (h *Handlers) GetHoldings(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/promoters/"), "/holdings")

	holdings, err := h.queryHandler.Holdings(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, holdings)
}

func (h *Handlers) GetPromoterMovements(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/promoters/"), "/movements")

	movements, err := h.queryHandler.MovementsByPromoter(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movements)
}

// Brand Handlers

func (h *Handlers) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.queryHandler.Brands(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, brands)
}

func (h *Handlers) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	brand, err := h.catalogSvc.CreateBrand(r.Context(), req.Name, middleware.GetEmployeeID(r.Context()))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, brand)
}

func (h *Handlers) SetBrandActive(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/brands/"), "/active")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogSvc.SetBrandActive(r.Context(), id, req.IsActive); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Brand updated"})
}

// Employee Handlers

func (h *Handlers) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.queryHandler.Employees(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

// respondDomainError maps domain and store errors onto HTTP statuses with a
// structured body, so the UI can render an actionable message.
func (h *Handlers) respondDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, stock.ErrUnauthenticated):
		status, kind = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, stock.ErrMissingPromoter),
		errors.Is(err, stock.ErrUnknownKind),
		errors.Is(err, catalog.ErrMissingName),
		errors.Is(err, catalog.ErrMissingBrand),
		errors.Is(err, catalog.ErrNoSizes),
		errors.Is(err, catalog.ErrBadQuantity),
		errors.Is(err, sharing.ErrPrimaryBrand):
		status, kind = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, store.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrInsufficientAvailable):
		status, kind = http.StatusConflict, "insufficient_available"
	case errors.Is(err, store.ErrInsufficientCirculation):
		status, kind = http.StatusConflict, "insufficient_circulation"
	case errors.Is(err, store.ErrConflictRetryable):
		status, kind = http.StatusConflict, "conflict_retryable"
	case errors.Is(err, sharing.ErrAlreadyLinked), errors.Is(err, store.ErrDuplicateKey):
		status, kind = http.StatusConflict, "already_exists"
	default:
		h.log.Error().Err(err).Msg("request failed")
	}

	respondJSON(w, status, map[string]string{"error": err.Error(), "kind": kind})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// extractPathParam returns everything after the prefix.
func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
