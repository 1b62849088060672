package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/forgelabs/appforge/internal/logic/deployservice"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/segmentio/encoding/json"
)

type HandlerDeployService struct {
	Logger              logger.Logger                `validate:"required"`
	ResponseConstructor response.HTTPRespConstructor `validate:"required"`
	ResponseWriter      response.Writer              `validate:"required"`
	DeployService       deployservice.Service        `validate:"required"`
}

// Prepare .
// Path         : POST /api/deploy/prepare
// Request Body : deployservice.InputPrepare
// Response     : deployservice.OutPrepare
func (h *HandlerDeployService) Prepare() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody deployservice.InputPrepare
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.DeployService.Prepare(ctx, reqBody)
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

// Start .
// Path         : POST /api/deploy/start
// Request Body : deployservice.InputStart
// Response     : deployservice.OutDeployment
func (h *HandlerDeployService) Start() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody deployservice.InputStart
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.DeployService.Start(ctx, claims.AccountID, reqBody)
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

// Status .
// Path         : POST /api/deploy/status
// Request Body : {"app_id": "..."} where app_id is optional
// Response     : deployservice.OutListDeployments
func (h *HandlerDeployService) Status() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody struct {
			AppID string `json:"app_id"`
		}
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil && !errors.Is(err, io.EOF) {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.DeployService.List(ctx, claims.AccountID, reqBody.AppID)
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

// UpdateStatus .
// Path         : POST /api/deploy/update-status
// Request Body : deployservice.InputUpdateStatus
// Response     : deployservice.OutDeployment
func (h *HandlerDeployService) UpdateStatus() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody deployservice.InputUpdateStatus
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.DeployService.UpdateStatus(ctx, claims.AccountID, reqBody)
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
