package wheel

import (
	"net/http"
	"time"

	"github.com/afrinode-dev/Africlick/internal/api/apierr"
	"github.com/afrinode-dev/Africlick/internal/converter"
	"github.com/afrinode-dev/Africlick/internal/middleware"
	"github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/pkg/resp"
)

type HandlerDeps struct {
	Serv service.WheelService
}

type Handler struct {
	serv service.WheelService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.serv.Spin(r.Context(), userID, time.Now())
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelSpinResponse(result))
}
