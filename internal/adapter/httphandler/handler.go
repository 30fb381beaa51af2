package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/port"
)

const sourceHeader = "X-Catalog-Source"

// CatalogHandler serves the public storefront reads. Reads never
// fail upstream, so the only non-200 here is a by-id miss.
type CatalogHandler struct {
	reader port.CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, reader port.CatalogReader) {
	h := CatalogHandler{reader}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/sale", h.GetSaleProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProductByID)
	mux.HandleFunc("GET /v1/products/{id}/related", h.GetRelatedProducts)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"

	force := r.URL.Query().Get("refresh") == "true"
	ps, source := h.reader.GetAllProducts(r.Context(), force)

	w.Header().Set(sourceHeader, string(source))
	writeJSON(w, http.StatusOK, toWireProducts(ps), op)
}

func (h CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductByID"
	log := slog.With("op", op)

	id := r.PathValue("id")
	p, err := h.reader.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch product", http.StatusServiceUnavailable)
		log.Error("failed to fetch product", "id", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toWireProduct(p), op)
}

func (h CatalogHandler) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetRelatedProducts"
	log := slog.With("op", op)

	id := r.PathValue("id")
	ref, err := h.reader.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch product", http.StatusServiceUnavailable)
		log.Error("failed to fetch product", "id", id, "err", err)
		return
	}

	related := h.reader.GetRelatedProducts(r.Context(), ref, limitParam(r))
	writeJSON(w, http.StatusOK, toWireProducts(related), op)
}

func (h CatalogHandler) GetSaleProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetSaleProducts"

	sale := h.reader.GetSaleProducts(r.Context(), limitParam(r))
	writeJSON(w, http.StatusOK, toWireProducts(sale), op)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"

	cs := h.reader.GetProductCategories(r.Context())
	writeJSON(w, http.StatusOK, toWireCategories(cs), op)
}

func limitParam(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
