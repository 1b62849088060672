package http

import (
	"net/http"

	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/encoding/json"
)

type HandlerAppService struct {
	Logger              logger.Logger                `validate:"required"`
	ResponseConstructor response.HTTPRespConstructor `validate:"required"`
	ResponseWriter      response.Writer              `validate:"required"`
	AppService          appservice.Service           `validate:"required"`
}

// CreateApp .
// Path         : POST /api/apps
// Request Body : appservice.InputCreateApp
// Response     : appservice.OutApp
func (h *HandlerAppService) CreateApp() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody appservice.InputCreateApp
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AppService.Create(ctx, claims.AccountID, reqBody)
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

// ListApps .
// Path     : GET /api/apps
// Response : appservice.OutListApps
func (h *HandlerAppService) ListApps() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		out, err := h.AppService.List(ctx, claims.AccountID)
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

// GetApp .
// Path     : GET /api/apps/{app_id}
// Response : appservice.OutApp
func (h *HandlerAppService) GetApp() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		out, err := h.AppService.Get(ctx, claims.AccountID, chi.URLParam(r, "app_id"))
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

// UpdateApp .
// Path         : PUT /api/apps/{app_id}
// Request Body : appservice.InputUpdateApp (absent fields stay untouched)
// Response     : appservice.OutApp
func (h *HandlerAppService) UpdateApp() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody appservice.InputUpdateApp
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AppService.Update(ctx, claims.AccountID, chi.URLParam(r, "app_id"), reqBody)
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

// TransitionApp .
// Path         : POST /api/apps/{app_id}/transition
// Request Body : appservice.InputTransition
// Response     : appservice.OutApp
func (h *HandlerAppService) TransitionApp() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody appservice.InputTransition
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.AppService.Transition(ctx, claims.AccountID, chi.URLParam(r, "app_id"), reqBody)
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

// DeleteApp .
// Path     : DELETE /api/apps/{app_id}
// Response : {"deleted": true}
func (h *HandlerAppService) DeleteApp() func(http.ResponseWriter, *http.Request) {
	type Response struct {
		Deleted bool `json:"deleted"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		err := h.AppService.Delete(ctx, claims.AccountID, chi.URLParam(r, "app_id"))
		if err != nil {
			kind, status := errKind(err)
			resp := h.ResponseConstructor.HTTPError(ctx, kind, err)
			h.ResponseWriter.JSON(status, w, r, resp)
			return
		}

		resp := h.ResponseConstructor.HTTPSuccess(ctx, Response{Deleted: true})
		h.ResponseWriter.JSON(http.StatusOK, w, r, resp)
	}
}
