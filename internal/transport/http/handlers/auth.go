package handlers

import (
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/events-api/internal/application/auth"
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/transport/http/dto"
	"github.com/baechuer/events-api/internal/transport/http/middleware"
	"github.com/baechuer/events-api/internal/transport/http/response"
	"github.com/baechuer/events-api/internal/transport/http/validate"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if domain.Is(err, domain.CodeUnauthorized) {
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			zlog.Info().Str("username", req.Username).Msg("login rejected")
		} else {
			middleware.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		response.Err(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	response.JSON(w, r, http.StatusOK, dto.LoginResp{
		UserID:    res.User.ID,
		Token:     res.Token.Token,
		TokenType: res.Token.TokenType,
		ExpiresIn: res.Token.ExpiresIn,
	})
}

// Profile returns the caller resolved by the auth middleware.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r)
	if u == nil {
		response.Err(w, r, domain.ErrUnauthorized("authentication required"))
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToUserResp(u))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegisterCmd{
		Username:        req.Username,
		Password:        req.Password,
		RetypedPassword: req.RetypedPassword,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusCreated, dto.RegisterResp{
		User:      dto.ToUserResp(res.User),
		Token:     res.Token.Token,
		TokenType: res.Token.TokenType,
		ExpiresIn: res.Token.ExpiresIn,
	})
}
