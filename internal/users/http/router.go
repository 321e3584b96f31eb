package http

import (
	"log/slog"
	"net/http"
	"time"

	"userd/internal/users/service"
	"userd/internal/users/store"
	"userd/pkg/httpx"
	"userd/pkg/slogx"

	_ "userd/api/users" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	UserService *service.UserService
	AuthService *service.AuthService
}

// policy binds a route pattern to its required authority. An empty
// authority means any authenticated principal may call the route. The table
// is evaluated by RequireAuthority before the handler runs.
type policy struct {
	pattern   string
	authority string
	handler   http.Handler
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			User Directory Service API
//	@version		0.1.0
//	@description	Credential and role administration service. All protected
//	@description	endpoints use stateless HTTP Basic authentication: credentials
//	@description	are verified on every request and no server-side session exists.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.basic	BasicAuth
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	policies := []policy{
		{"GET /api/users", "TESTER", http.HandlerFunc(h.HandleList)},
		{"GET /api/users/{id}", "ADMIN", http.HandlerFunc(h.HandleGet)},
		{"POST /api/users", "ADMIN", http.HandlerFunc(h.HandleCreate)},
	}

	for _, p := range policies {
		r.Mux.Handle(p.pattern, httpx.Chain(p.handler,
			BasicAuth(r.AuthService),
			RequireAuthority(p.authority),
		))
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
