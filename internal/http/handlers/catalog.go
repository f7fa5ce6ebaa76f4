package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/xknRiya/cats-api/internal/http/respond"
	"github.com/xknRiya/cats-api/internal/models/dto"
	"github.com/xknRiya/cats-api/internal/service"
	"github.com/xknRiya/cats-api/internal/storage"
)

// CatalogHandler serves the /breeds and /cats resources.
type CatalogHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

func (h *CatalogHandler) CreateBreed(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBreedRequest
	if !decode(w, r, &req) {
		return
	}
	breed, err := h.svc.CreateBreed(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, "create breed failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, breed)
}

func (h *CatalogHandler) ListBreeds(w http.ResponseWriter, r *http.Request) {
	breeds, err := h.svc.ListBreeds(r.Context())
	if err != nil {
		h.fail(w, r, "list breeds failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, breeds)
}

func (h *CatalogHandler) GetBreed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	breed, err := h.svc.GetBreed(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get breed failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, breed)
}

func (h *CatalogHandler) UpdateBreed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateBreedRequest
	if !decode(w, r, &req) {
		return
	}
	breed, err := h.svc.UpdateBreed(r.Context(), id, *req.Name)
	if err != nil {
		h.fail(w, r, "update breed failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, breed)
}

func (h *CatalogHandler) DeleteBreed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteBreed(r.Context(), id); err != nil {
		h.fail(w, r, "delete breed failed", err)
		return
	}
	respond.NoContent(w)
}

func (h *CatalogHandler) CreateCat(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCatRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.svc.CreateCat(r.Context(), req.Name, req.Age, req.Breed)
	if err != nil {
		h.fail(w, r, "create cat failed", err)
		return
	}
	respond.JSON(w, http.StatusCreated, cat)
}

func (h *CatalogHandler) ListCats(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCats(r.Context())
	if err != nil {
		h.fail(w, r, "list cats failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) GetCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cat, err := h.svc.GetCat(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get cat failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, cat)
}

func (h *CatalogHandler) UpdateCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCatRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.svc.UpdateCat(r.Context(), id, req.Name, req.Age, req.Breed)
	if err != nil {
		h.fail(w, r, "update cat failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, cat)
}

func (h *CatalogHandler) DeleteCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCat(r.Context(), id); err != nil {
		h.fail(w, r, "delete cat failed", err)
		return
	}
	respond.NoContent(w)
}

func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrBreedNotFound):
		respond.Error(w, http.StatusBadRequest, "Breed not found")
	case errors.Is(err, service.ErrBreedExists):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	default:
		internalError(w, r, h.logger, msg, err)
	}
}
