package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/httpx"
	"github.com/lotworks/opls/pkg/jwtx"
	"github.com/lotworks/opls/pkg/slogx"

	_ "github.com/lotworks/opls/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	ClientService  *service.ClientService
	AccountService *service.AccountService
	SessionService *service.SessionService
	GrantService   *service.GrantService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth()
	r.registerAccounts()
	r.registerClients()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OPLS Authentication Service API
//	@version		1.0.0
//	@description	OAuth2-style authentication backend for the Open Parking Lot System.
//	@description	Issues EdDSA-signed JWT access tokens with single-use rotating refresh tokens.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth() {
	// POST /oauth/token - strict rate limit keyed by IP + username so one
	// address cannot brute-force a single account
	tokenHandler := &TokenHandler{
		Clients: r.ClientService,
		Grants:  r.GrantService,
		Signer:  r.signer,
		Issuer:  r.issuer,
	}
	r.Mux.Handle("POST /oauth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /oauth/revoke - moderate rate limit
	revokeHandler := &RevokeHandler{
		Clients:  r.ClientService,
		Sessions: r.SessionService,
	}
	r.Mux.Handle("POST /oauth/revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{Accounts: r.AccountService}

	// POST /account - public signup endpoint, strict rate limit by IP
	r.Mux.Handle("POST /account",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /account - authenticated, registered users only
	r.Mux.Handle("GET /account",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRegistered(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /account/security-question - public, strict limit to slow enumeration
	r.Mux.Handle("GET /account/security-question",
		httpx.Chain(http.HandlerFunc(h.HandleSecurityQuestion),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// PUT /account/password - public reset flow, strict limit by IP
	r.Mux.Handle("PUT /account/password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Claim management is admin only
	securedGrant := httpx.Chain(http.HandlerFunc(h.HandleGrantClaim),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyClaim("ADMIN"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedRevoke := httpx.Chain(http.HandlerFunc(h.HandleRevokeClaim),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyClaim("ADMIN"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("PUT /account/{id}/claims/{claim}", securedGrant)
	r.Mux.Handle("DELETE /account/{id}/claims/{claim}", securedRevoke)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{Clients: r.ClientService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyClaim("ADMIN"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyClaim("ADMIN"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyClaim("ADMIN"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /clients", securedCreate)
	r.Mux.Handle("GET /clients", securedList)
	r.Mux.Handle("DELETE /clients/{client_id}", securedDelete)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
