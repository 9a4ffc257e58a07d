package auth

import (
	"net/http"

	"github.com/afrinode-dev/Africlick/internal/api/apierr"
	dto "github.com/afrinode-dev/Africlick/internal/api/dto/auth"
	"github.com/afrinode-dev/Africlick/internal/converter"
	"github.com/afrinode-dev/Africlick/internal/service"
	"github.com/afrinode-dev/Africlick/pkg/req"
	"github.com/afrinode-dev/Africlick/pkg/resp"

	"github.com/rs/zerolog"
)

type HandlerDeps struct {
	Serv service.AuthService
	Log  zerolog.Logger
}

type Handler struct {
	serv service.AuthService
	log  zerolog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// Register создает пользователя и отправляет код подтверждения.
// Аккаунт остается неактивным до верификации
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.serv.Register(
		r.Context(),
		converter.RegisterRequestToUserModel(&requestBody),
		requestBody.ReferralCode,
	)
	if err != nil {
		h.log.Error().Err(err).Msg("register failed")
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToRegisterResponse(user))
}

// Verify подтверждает аккаунт по коду из SMS
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.VerifyRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.serv.VerifyAccount(r.Context(), requestBody.Phone, requestBody.Code)
	if err != nil {
		h.log.Error().Err(err).Msg("verify failed")
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserSummary(user))
}

// ResendCode повторно отправляет код подтверждения
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.ResendCodeRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.serv.ResendCode(r.Context(), requestBody.Phone); err != nil {
		h.log.Error().Err(err).Msg("resend code failed")
		apierr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Login открывает сессию и возвращает access_token,
// session_id и refresh_token уходят через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	data, user, err := h.serv.Login(
		r.Context(),
		requestBody.Phone,
		requestBody.Password,
	)
	if err != nil {
		h.log.Warn().Err(err).Msg("login failed")
		apierr.Write(w, err)
		return
	}

	setSessionIDCookie(w, data.SessionID)
	setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		AccessToken: data.AccessToken,
		User:        converter.ToUserSummary(user),
	})
}

// Refresh обновляет access_token по session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sc, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "no session_id cookie", http.StatusUnauthorized)
		return
	}
	rc, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "no refresh_token cookie", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), sc.Value, rc.Value)
	if err != nil {
		h.log.Warn().Err(err).Msg("refresh failed")
		http.Error(w, "refresh failed", http.StatusUnauthorized)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"access_token": accessToken,
	})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "no session_id cookie", http.StatusUnauthorized)
		return
	}

	if err := h.serv.Logout(r.Context(), c.Value); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	deleteSessionIDCookie(w)
	deleteRefreshTokenCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// setRefreshTokenCookie устанавливает cookie с refresh_token
func setRefreshTokenCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth/refresh",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24 * 30, // 30 дней
	})
}

// deleteRefreshTokenCookie удаляет cookie с refresh_token
func deleteRefreshTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionIDCookie устанавливает cookie с session_id
func setSessionIDCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   30 * 24 * 60 * 60, // 30 дней
	})
}

// deleteSessionIDCookie удаляет cookie с session_id
func deleteSessionIDCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
