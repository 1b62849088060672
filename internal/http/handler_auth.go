package http

import (
	"errors"
	"net/http"

	"github.com/forgelabs/appforge/internal/logic/authservice"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/forgelabs/appforge/pkg/token"
	"github.com/segmentio/encoding/json"
)

type HandlerAuthService struct {
	Logger              logger.Logger                `validate:"required"`
	ResponseConstructor response.HTTPRespConstructor `validate:"required"`
	ResponseWriter      response.Writer              `validate:"required"`
	AuthService         authservice.Service          `validate:"required"`
}

// Register .
// Path         : POST /api/auth/register
// Request Body : authservice.InputRegister
// Response     : authservice.OutTokenPair
func (h *HandlerAuthService) Register() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody authservice.InputRegister
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AuthService.Register(ctx, reqBody)
		if errors.Is(err, authservice.ErrEmailTaken) {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrDuplicateEntries, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, out)
		h.ResponseWriter.JSON(http.StatusCreated, w, r, resp)
	}
}

// Login .
// Path         : POST /api/auth/login
// Request Body : authservice.InputLogin
// Response     : authservice.OutTokenPair
func (h *HandlerAuthService) Login() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody authservice.InputLogin
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AuthService.Login(ctx, reqBody)
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, err)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, out)
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}

// Refresh .
// Path         : POST /api/auth/refresh
// Request Body : {"refresh_token": "..."}
// Response     : authservice.OutRefresh
func (h *HandlerAuthService) Refresh() func(http.ResponseWriter, *http.Request) {
	type Request struct {
		RefreshToken string `json:"refresh_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody Request
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AuthService.Refresh(ctx, reqBody.RefreshToken)
		if errors.Is(err, token.ErrInvalidToken) {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, err)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, out)
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}

// Verify .
// Path         : POST /api/auth/verify
// Response     : the verified token claims
func (h *HandlerAuthService) Verify() func(http.ResponseWriter, *http.Request) {
	type Response struct {
		Valid  bool   `json:"valid"`
		UserID string `json:"user_id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, Response{
			Valid:  true,
			UserID: claims.AccountID,
		})
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}

// Me .
// Path     : GET /api/auth/me
// Response : authservice.OutAccount
func (h *HandlerAuthService) Me() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		out, err := h.AuthService.Profile(ctx, claims.AccountID)
		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, out)
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}

// UpdateMe .
// Path         : PUT /api/auth/me
// Request Body : authservice.InputUpdatePlan
// Response     : authservice.OutAccount
func (h *HandlerAuthService) UpdateMe() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody authservice.InputUpdatePlan
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AuthService.UpdatePlan(ctx, claims.AccountID, reqBody)
		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, out)
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}
