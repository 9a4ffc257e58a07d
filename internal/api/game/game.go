package game

import (
	"net/http"

	"github.com/afrinode-dev/Africlick/internal/api/apierr"
	dto "github.com/afrinode-dev/Africlick/internal/api/dto/game"
	"github.com/afrinode-dev/Africlick/internal/converter"
	"github.com/afrinode-dev/Africlick/internal/middleware"
	"github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/pkg/req"
	"github.com/afrinode-dev/Africlick/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameList(h.serv.List()))
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Play(r.Context(), userID, chi.URLParam(r, "id"), payload.Bet)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlayResponse(result))
}
