package http

import (
	"net/http"

	"github.com/forgelabs/appforge/internal/logic/genservice"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/segmentio/encoding/json"
)

type HandlerGenService struct {
	Logger              logger.Logger                `validate:"required"`
	ResponseConstructor response.HTTPRespConstructor `validate:"required"`
	ResponseWriter      response.Writer              `validate:"required"`
	GenService          genservice.Service           `validate:"required"`
}

// Generate .
// Path         : POST /api/generate
// Request Body : genservice.InputGenerate
// Response     : genservice.OutGenerate
func (h *HandlerGenService) Generate() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrUnauthorized, errMissingClaims)
			h.ResponseWriter.JSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		var reqBody genservice.InputGenerate
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(&reqBody)
		if err != nil {
			resp := h.ResponseConstructor.HTTPError(ctx, response.ErrValidation, err)
			h.ResponseWriter.JSON(http.StatusBadRequest, w, r, resp)
			return
		}

		out, err := h.GenService.Generate(ctx, claims.AccountID, reqBody)
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
