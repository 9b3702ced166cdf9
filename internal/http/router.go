package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Funnel     *FunnelHandler
	Account    *AccountHandler
	Bookings   *BookingHandler
	Catalog    *CatalogHandler
	Concierge  *ConciergeHandler
	Promos     *PromoHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Funnel != nil {
		mux.HandleFunc("/state", methodOnly(http.MethodGet, cfg.Funnel.State))
		mux.HandleFunc("/search", methodOnly(http.MethodPost, cfg.Funnel.Search))
		mux.HandleFunc("/book", methodOnly(http.MethodPost, cfg.Funnel.Book))
		mux.HandleFunc("/quote", methodOnly(http.MethodGet, cfg.Funnel.Quote))
		mux.HandleFunc("/details", methodOnly(http.MethodPost, cfg.Funnel.Details))
		mux.HandleFunc("/payment", methodOnly(http.MethodPost, cfg.Funnel.Payment))
		mux.HandleFunc("/back", methodOnly(http.MethodPost, cfg.Funnel.Back))
		mux.HandleFunc("/home", methodOnly(http.MethodPost, cfg.Funnel.Home))
		mux.HandleFunc("/navigate", methodOnly(http.MethodPost, cfg.Funnel.Navigate))
		mux.HandleFunc("/favorites", methodOnly(http.MethodGet, cfg.Funnel.Favorites))

		mux.HandleFunc("/suites/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/suites/")
			suiteID, action, found := strings.Cut(rest, "/")
			if suiteID == "" || !found {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			r = r.WithContext(ContextWithSuiteID(r.Context(), suiteID))
			switch action {
			case "inspect":
				cfg.Funnel.Inspect(w, r)
			case "select":
				cfg.Funnel.Select(w, r)
			case "favorite":
				cfg.Funnel.Favorite(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Account != nil {
		mux.HandleFunc("/auth/signin", methodOnly(http.MethodPost, cfg.Account.SignIn))
		mux.HandleFunc("/auth/signup", methodOnly(http.MethodPost, cfg.Account.SignUp))
		mux.HandleFunc("/auth/signout", methodOnly(http.MethodPost, cfg.Account.SignOut))
		mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Account.GetProfile(w, r)
			case http.MethodPut:
				cfg.Account.UpdateProfile(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/bookings", methodOnly(http.MethodGet, cfg.Bookings.List))
		mux.HandleFunc("/bookings/active", methodOnly(http.MethodGet, cfg.Bookings.Active))
	}

	if cfg.Catalog != nil {
		mux.HandleFunc("/villas", methodOnly(http.MethodGet, cfg.Catalog.List))
		mux.HandleFunc("/villas/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/villas/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Catalog.Get(w, r, id)
		})
	}

	if cfg.Concierge != nil {
		mux.HandleFunc("/concierge", methodOnly(http.MethodPost, cfg.Concierge.Chat))
	}

	if cfg.Promos != nil {
		mux.HandleFunc("/popups", methodOnly(http.MethodGet, cfg.Promos.Due))
		mux.HandleFunc("/popups/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/popups/")
			name, action, found := strings.Cut(rest, "/")
			if name == "" || !found || action != "dismiss" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Promos.Dismiss(w, r, name)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	return handler
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		next(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
