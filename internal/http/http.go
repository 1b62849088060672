package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/internal/logic/authservice"
	"github.com/forgelabs/appforge/internal/logic/deployservice"
	"github.com/forgelabs/appforge/internal/logic/genservice"
	"github.com/forgelabs/appforge/pkg/codegen"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/forgelabs/appforge/pkg/token"
	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	govalidator "github.com/go-playground/validator/v10"
)

var errMissingClaims = errors.New("no token claims in request context")

type Config struct {
	DebugError    bool
	Log           logger.Logger         `validate:"required"`
	AuthService   authservice.Service   `validate:"required"`
	AppService    appservice.Service    `validate:"required"`
	GenService    genservice.Service    `validate:"required"`
	DeployService deployservice.Service `validate:"required"`
}

type defaultHTTP struct {
	router *chi.Mux
}

func NewHTTPTransport(config Config) (*defaultHTTP, error) {
	if err := validator.Validate(config); err != nil {
		return nil, fmt.Errorf("http transport config error: %w", err)
	}

	respCons := response.NewResponseConstructor(config.DebugError)
	respWriter := response.New()

	handlerAuth := &HandlerAuthService{
		Logger:              config.Log,
		ResponseConstructor: respCons,
		ResponseWriter:      respWriter,
		AuthService:         config.AuthService,
	}

	handlerApp := &HandlerAppService{
		Logger:              config.Log,
		ResponseConstructor: respCons,
		ResponseWriter:      respWriter,
		AppService:          config.AppService,
	}

	handlerGen := &HandlerGenService{
		Logger:              config.Log,
		ResponseConstructor: respCons,
		ResponseWriter:      respWriter,
		GenService:          config.GenService,
	}

	handlerDeploy := &HandlerDeployService{
		Logger:              config.Log,
		ResponseConstructor: respCons,
		ResponseWriter:      respWriter,
		DeployService:       config.DeployService,
	}

	for _, h := range []interface{}{handlerAuth, handlerApp, handlerGen, handlerDeploy} {
		if err := validator.Validate(h); err != nil {
			return nil, fmt.Errorf("http transport handler error: %w", err)
		}
	}

	skip := func(r *http.Request) bool {
		return r.URL.Path == "/health"
	}

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// add trace id and also log request response
	router.Use(func(next http.Handler) http.Handler {
		return requestLogger(skip, next)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlerAuth.Register())
		r.Post("/login", handlerAuth.Login())
		r.Post("/refresh", handlerAuth.Refresh())

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(config.AuthService))
			r.Post("/verify", handlerAuth.Verify())
			r.Get("/me", handlerAuth.Me())
			r.Put("/me", handlerAuth.UpdateMe())
		})
	})

	router.Route("/api/apps", func(r chi.Router) {
		r.Use(RequireAuth(config.AuthService))

		r.Post("/", handlerApp.CreateApp())
		r.Get("/", handlerApp.ListApps())
		r.Get("/{app_id}", handlerApp.GetApp())
		r.Put("/{app_id}", handlerApp.UpdateApp())
		r.Delete("/{app_id}", handlerApp.DeleteApp())
		r.Post("/{app_id}/transition", handlerApp.TransitionApp())
	})

	router.Route("/api/generate", func(r chi.Router) {
		r.Use(RequireAuth(config.AuthService))

		r.Post("/", handlerGen.Generate())
	})

	router.Route("/api/deploy", func(r chi.Router) {
		r.Use(RequireAuth(config.AuthService))

		r.Post("/prepare", handlerDeploy.Prepare())
		r.Post("/start", handlerDeploy.Start())
		r.Post("/status", handlerDeploy.Status())
		r.Post("/update-status", handlerDeploy.UpdateStatus())
	})

	return &defaultHTTP{router: router}, nil
}

// Server .
func (a *defaultHTTP) Server() http.Handler {
	return a.router
}

// errKind maps a service error to the response taxonomy and an HTTP status.
// Handlers special-case errors whose status depends on the route; everything
// else goes through here.
func errKind(err error) (response.ErrKind, int) {
	var fieldErrs govalidator.ValidationErrors

	switch {
	case errors.As(err, &fieldErrs):
		return response.ErrValidation, http.StatusBadRequest

	case errors.Is(err, storage.ErrValidation):
		return response.ErrValidation, http.StatusBadRequest

	case errors.Is(err, appservice.ErrAppNotFound),
		errors.Is(err, deployservice.ErrDeploymentNotFound),
		errors.Is(err, authservice.ErrAccountNotFound):
		return response.ErrResourceNotFound, http.StatusNotFound

	case errors.Is(err, appservice.ErrInvalidTransition),
		errors.Is(err, deployservice.ErrInvalidState):
		return response.ErrInvalidState, http.StatusBadRequest

	case errors.Is(err, deployservice.ErrUnsupportedProvider):
		return response.ErrValidation, http.StatusBadRequest

	case errors.Is(err, genservice.ErrQuotaExceeded):
		return response.ErrQuotaExceeded, http.StatusForbidden

	case errors.Is(err, codegen.ErrNotConfigured):
		return response.ErrUnavailable, http.StatusServiceUnavailable

	case errors.Is(err, token.ErrInvalidToken):
		return response.ErrUnauthorized, http.StatusUnauthorized
	}

	return response.ErrUnhandled, http.StatusInternalServerError
}
