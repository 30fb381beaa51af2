package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/port"
)

// AdminHandler serves the admin panel: product CRUD and cache
// control. Every route requires the admin token.
type AdminHandler struct {
	editor port.CatalogEditor
	cache  port.CacheController
	token  string
}

func RegisterAdmin(
	mux *http.ServeMux,
	editor port.CatalogEditor,
	cache port.CacheController,
	token string,
) {
	h := AdminHandler{editor, cache, token}
	mux.HandleFunc("POST /v1/products", h.authorized(h.PostProduct))
	mux.HandleFunc("PUT /v1/products/{id}", h.authorized(h.PutProduct))
	mux.HandleFunc("DELETE /v1/products/{id}", h.authorized(h.DeleteProduct))
	mux.HandleFunc("GET /v1/cache", h.authorized(h.GetCacheInfo))
	mux.HandleFunc("DELETE /v1/cache", h.authorized(h.DeleteCache))
}

// authorized checks the X-Admin-Token header. An empty configured
// token leaves the admin surface open, for local development only.
func (h AdminHandler) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.token != "" && r.Header.Get("X-Admin-Token") != h.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	var wp Product
	if err := json.NewDecoder(r.Body).Decode(&wp); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	created, err := h.editor.CreateProduct(r.Context(), toDomainProduct(wp))
	if err != nil {
		h.writeMutationErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWireProduct(created), op)
	log.Info("product created", "id", created.ID)
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"
	log := slog.With("op", op)

	var wp Product
	if err := json.NewDecoder(r.Body).Decode(&wp); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	id := r.PathValue("id")
	updated, err := h.editor.UpdateProduct(r.Context(), id, toDomainProduct(wp))
	if err != nil {
		h.writeMutationErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWireProduct(updated), op)
	log.Info("product updated", "id", updated.ID)
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if err := h.editor.DeleteProduct(r.Context(), id); err != nil {
		h.writeMutationErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("product deleted", "id", id)
}

func (h AdminHandler) GetCacheInfo(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetCacheInfo"
	writeJSON(w, http.StatusOK, toWireCacheInfo(h.cache.CacheInfo()), op)
}

func (h AdminHandler) DeleteCache(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteCache"
	log := slog.With("op", op)

	h.cache.ClearProductsCache()

	w.WriteHeader(http.StatusNoContent)
	log.Info("cache cleared by admin")
}

func (h AdminHandler) writeMutationErr(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct):
		http.Error(w, "invalid product", http.StatusBadRequest)
	case errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	default:
		http.Error(w, "mutation failed", http.StatusInternalServerError)
		log.Error("mutation failed", "err", err)
	}
}
