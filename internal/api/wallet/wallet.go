package wallet

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/afrinode-dev/Africlick/internal/api/apierr"
	dto "github.com/afrinode-dev/Africlick/internal/api/dto/wallet"
	"github.com/afrinode-dev/Africlick/internal/client/filestore"
	"github.com/afrinode-dev/Africlick/internal/config"
	"github.com/afrinode-dev/Africlick/internal/converter"
	"github.com/afrinode-dev/Africlick/internal/middleware"
	"github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/pkg/req"
	"github.com/afrinode-dev/Africlick/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxPictureSize = 5 << 20 // 5 МБ

type HandlerDeps struct {
	Serv       service.WalletService
	Files      filestore.FileStore
	OfferWalls config.OfferWallsConfig
	Log        zerolog.Logger
}

type Handler struct {
	serv       service.WalletService
	files      filestore.FileStore
	offerWalls config.OfferWallsConfig
	log        zerolog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:       deps.Serv,
		files:      deps.Files,
		offerWalls: deps.OfferWalls,
		log:        deps.Log,
	}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Deposit(r.Context(), userID, payload.Amount, payload.Phone, payload.Method)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("deposit failed")
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDepositResponse(result))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.WithdrawRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Withdraw(r.Context(), userID, payload.Amount, payload.Phone, payload.Method)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("withdraw failed")
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWithdrawResponse(result))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	events, err := h.serv.History(r.Context(), userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryEvents(events))
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.serv.Tasks(r.Context())
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTasks(tasks))
}

func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	newBalance, taskPoints, err := h.serv.CompleteTask(r.Context(), userID, taskID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.CompleteTaskResponse{
		NewBalance: newBalance,
		TaskPoints: taskPoints,
	})
}

// WithdrawEarnings - вывод заработка казны на счет администратора
func (h *Handler) WithdrawEarnings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	total, err := h.serv.WithdrawEarnings(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("earnings withdrawal failed")
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawEarningsResponse{TotalWithdrawn: total})
}

// ProfilePicture - загрузка картинки профиля (multipart, поле picture)
func (h *Handler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		http.Error(w, "missing picture", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ref, err := h.files.Save(r.Context(), userID, filepath.Ext(header.Filename), file)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("picture upload failed")
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"picture": ref})
}

// OfferWalls - статический список партнерских площадок
func (h *Handler) OfferWalls(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, h.offerWalls.URLs())
}
