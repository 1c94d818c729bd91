package adapthttp

import (
	"context"
	"net/http"

	"feedback/internal/app"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Services are the application services the HTTP adapter drives.
type Services struct {
	BloodPressure app.CRUD[app.BloodPressureDTO]
	Points        app.CRUD[app.PointsDTO]
	Weight        app.CRUD[app.WeightDTO]
	Preferences   *app.PreferencesService
	Charts        *app.ChartsService
	Auth          *app.AuthService
	Tokens        *app.TokenService
}

// Options configure the HTTP adapter.
type Options struct {
	// AppName prefixes the alert headers, e.g. X-feedbackApp-alert.
	AppName string
	WebDir  string
	// TrustForwardAuth accepts the Remote-User header set by an
	// authenticating reverse proxy.
	TrustForwardAuth bool
	OIDC             OIDCConfig
	Logger           *zap.Logger
	// Ping, if set, backs /api/health with a storage check.
	Ping func(context.Context) error
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc        Services
	appName    string
	webDir     string
	trustProxy bool
	oidcConfig OIDCConfig
	log        *zap.Logger
	ping       func(context.Context) error
}

// New creates a Server wired to the given application services.
func New(svc Services, opts Options) *Server {
	if opts.AppName == "" {
		opts.AppName = "feedbackApp"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		svc:        svc,
		appName:    opts.AppName,
		webDir:     opts.WebDir,
		trustProxy: opts.TrustForwardAuth,
		oidcConfig: opts.OIDC,
		log:        opts.Logger,
		ping:       opts.Ping,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/authenticate", s.handleAuthenticate).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/setup", s.handleSetupUser).Methods(http.MethodPost)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.authMiddleware)

	protected.HandleFunc("/account", s.handleAccount).Methods(http.MethodGet)
	protected.HandleFunc("/charts/daily", s.handleChartsDaily).Methods(http.MethodGet)

	register(protected, s, Descriptor[app.BloodPressureDTO]{
		Entity:     "bloodPressure",
		Collection: "blood-pressures",
		ID:         func(d *app.BloodPressureDTO) *int64 { return d.ID },
		Owner:      func(d *app.BloodPressureDTO) **int64 { return &d.UserID },
	}, s.svc.BloodPressure)

	register(protected, s, Descriptor[app.PointsDTO]{
		Entity:      "points",
		Collection:  "points",
		ID:          func(d *app.PointsDTO) *int64 { return d.ID },
		Owner:       func(d *app.PointsDTO) **int64 { return &d.UserID },
		OwnerScoped: true,
	}, s.svc.Points)

	register(protected, s, Descriptor[app.WeightDTO]{
		Entity:     "weight",
		Collection: "weights",
		ID:         func(d *app.WeightDTO) *int64 { return d.ID },
		Owner:      func(d *app.WeightDTO) **int64 { return &d.UserID },
	}, s.svc.Weight)

	register[app.PreferencesDTO](protected, s, Descriptor[app.PreferencesDTO]{
		Entity:      "preferences",
		Collection:  "preferences",
		ID:          func(d *app.PreferencesDTO) *int64 { return d.ID },
		Owner:       func(d *app.PreferencesDTO) **int64 { return &d.UserID },
		OwnerScoped: true,
		Validate:    s.svc.Preferences.Validate,
	}, s.svc.Preferences)

	if s.webDir != "" {
		r.PathPrefix("/").Handler(spaFromDisk(s.webDir))
	}

	return withNoCache(s.requestIDMiddleware(s.loggingMiddleware(r)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			s.log.Error("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": "storage unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
