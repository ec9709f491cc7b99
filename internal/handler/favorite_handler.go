package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"star-catalog-api/internal/middleware"
	"star-catalog-api/internal/model"
	"star-catalog-api/internal/service"
	"star-catalog-api/pkg/apierror"
)

type FavoriteHandler struct {
	service *service.FavoriteService
}

func NewFavoriteHandler(service *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List responds with {"<target>": [ids]} for the acting user.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthenticated())
		return
	}

	target := chi.URLParam(r, "target")
	ids, err := h.service.List(r.Context(), user, target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]int64{target: ids})
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthenticated())
		return
	}

	target, targetID, err := favoriteParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	fav, err := h.service.Add(r.Context(), user, target, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.FavoriteMutation{
		Status:   "added",
		Email:    user.Email,
		Target:   fav.Target,
		TargetID: fav.TargetID,
	})
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthenticated())
		return
	}

	target, targetID, err := favoriteParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Removing an absent tuple is fine; zero rows deleted still
	// reports "deleted".
	if _, err := h.service.Remove(r.Context(), user, target, targetID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.FavoriteMutation{
		Status:   "deleted",
		Email:    user.Email,
		Target:   target,
		TargetID: targetID,
	})
}

func favoriteParams(r *http.Request) (string, int64, error) {
	target := chi.URLParam(r, "target")
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return "", 0, apierror.BadRequest("target id must be an integer")
	}
	return target, targetID, nil
}
