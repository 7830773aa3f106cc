package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/promostock/internal/api/middleware"
	"github.com/example/promostock/internal/auth"
)

func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	protected := middleware.AuthMiddleware(jwtService)

	// Auth
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authHandlers.Register(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authHandlers.Login(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authHandlers.Logout(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authHandlers.Refresh(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/api/auth/me", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authHandlers.Me(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Movements
	mux.Handle("/movements", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.RecordMovement(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/movements/batch", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlers.ApplyBatch(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Items
	mux.Handle("/items", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetItems(w, r)
		case http.MethodPost:
			handlers.CreateItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/items/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/watch") && r.Method == http.MethodGet:
			handlers.WatchItem(w, r)
		case strings.HasSuffix(path, "/quantities") && r.Method == http.MethodGet:
			handlers.GetItemQuantities(w, r)
		case strings.HasSuffix(path, "/movements") && r.Method == http.MethodGet:
			handlers.GetItemMovements(w, r)
		case strings.HasSuffix(path, "/sizes") && r.Method == http.MethodPost:
			handlers.AddSize(w, r)
		case strings.HasSuffix(path, "/active") && r.Method == http.MethodPost:
			handlers.SetItemActive(w, r)
		case strings.HasSuffix(path, "/share") && r.Method == http.MethodPost:
			handlers.LinkSharedItem(w, r)
		case strings.Contains(path, "/share/") && r.Method == http.MethodDelete:
			handlers.UnlinkSharedItem(w, r)
		case r.Method == http.MethodGet:
			handlers.GetItem(w, r)
		case r.Method == http.MethodPut:
			handlers.UpdateItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Promoters
	mux.Handle("/promoters", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetPromoters(w, r)
		case http.MethodPost:
			handlers.CreatePromoter(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/promoters/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/holdings") && r.Method == http.MethodGet:
			handlers.GetHoldings(w, r)
		case strings.HasSuffix(path, "/movements") && r.Method == http.MethodGet:
			handlers.GetPromoterMovements(w, r)
		case strings.HasSuffix(path, "/active") && r.Method == http.MethodPost:
			handlers.SetPromoterActive(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Brands
	mux.Handle("/brands", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetBrands(w, r)
		case http.MethodPost:
			handlers.CreateBrand(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/brands/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/active") && r.Method == http.MethodPost:
			handlers.SetBrandActive(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Employees
	mux.Handle("/employees", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetEmployees(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	return withLogging(mux, log)
}

func withLogging(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
