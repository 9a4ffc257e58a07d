package apierr

import (
	"errors"
	"net/http"

	"github.com/afrinode-dev/Africlick/internal/model"
	"github.com/afrinode-dev/Africlick/pkg/resp"
)

// Соответствие доменных ошибок HTTP статусам. Все остальное - 500
// без деталей наружу
var statusByErr = map[error]int{
	model.ErrInsufficientFunds:    http.StatusPaymentRequired,
	model.ErrBelowMinimumDeposit:  http.StatusBadRequest,
	model.ErrBelowMinimumWithdraw: http.StatusBadRequest,
	model.ErrBetTooSmall:          http.StatusBadRequest,
	model.ErrNoAttemptsLeft:       http.StatusTooManyRequests,
	model.ErrDuplicatePhone:       http.StatusConflict,
	model.ErrGameNotFound:         http.StatusNotFound,
	model.ErrTaskNotFound:         http.StatusNotFound,
	model.ErrUserNotFound:         http.StatusNotFound,
	model.ErrInvalidCredentials:   http.StatusUnauthorized,
	model.ErrAccountNotVerified:   http.StatusForbidden,
	model.ErrInvalidCode:          http.StatusBadRequest,
	model.ErrForbidden:            http.StatusForbidden,
	model.ErrNoEarningsAvailable:  http.StatusBadRequest,
}

// Write - отдает доменную ошибку клиенту с подходящим статусом
func Write(w http.ResponseWriter, err error) {
	for sentinel, status := range statusByErr {
		if errors.Is(err, sentinel) {
			resp.WriteJSONResponse(w, status, map[string]string{"error": sentinel.Error()})
			return
		}
	}

	resp.WriteJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
