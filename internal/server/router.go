package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/auth"
	"github.com/pkaminski/lakiernia/httpx"
	"github.com/pkaminski/lakiernia/internal/events"
	"github.com/pkaminski/lakiernia/internal/handlers"
	"github.com/pkaminski/lakiernia/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, bus *events.Bus) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "db_unreachable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Auth ---
	ah := handlers.NewAuthHandler(db)
	mux.Handle("/login", onlyMethod(http.MethodPost, ah.Login))
	mux.Handle("/logout", auth.Middleware(onlyMethod(http.MethodPost, ah.Logout)))
	mux.Handle("/me", auth.Middleware(onlyMethod(http.MethodGet, ah.Me)))

	protect := func(h http.Handler) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	// --- Clients ---
	ch := handlers.NewClientHandler(db)
	mux.Handle("/clients", protect(listCreate(ch.List, ch.Create)))
	mux.Handle("/clients/update", protect(onlyMethod(http.MethodPost, ch.Update)))
	mux.Handle("/clients/delete", protect(onlyMethod(http.MethodPost, ch.Delete)))

	// --- Variant catalog & client pricing ---
	pricingSvc := services.NewPricingService(db)
	vh := handlers.NewVariantHandler(db)
	prh := handlers.NewPricingHandler(db, pricingSvc)
	mux.Handle("/variants", protect(onlyMethod(http.MethodGet, vh.List)))
	mux.Handle("/client-pricing", protect(listCreate(prh.List, prh.Upsert)))
	mux.Handle("/client-pricing/delete", protect(onlyMethod(http.MethodPost, prh.Delete)))

	// --- Orders & items ---
	oh := handlers.NewOrderHandler(db, bus)
	oih := handlers.NewOrderItemHandler(db, pricingSvc)
	mux.Handle("/orders", protect(listCreate(oh.List, oh.Create)))
	mux.Handle("/orders/get", protect(onlyMethod(http.MethodGet, oh.Get)))
	mux.Handle("/orders/update", protect(onlyMethod(http.MethodPost, oh.Update)))
	mux.Handle("/orders/delete", protect(onlyMethod(http.MethodPost, oh.Delete)))
	mux.Handle("/order-items", protect(listCreate(oih.List, oih.Create)))
	mux.Handle("/order-items/update", protect(onlyMethod(http.MethodPost, oih.Update)))
	mux.Handle("/order-items/delete", protect(onlyMethod(http.MethodPost, oih.Delete)))

	// --- Work logs, purchases, monthly costs ---
	wlh := handlers.NewWorkLogHandler(db)
	ph := handlers.NewPurchaseHandler(db)
	mch := handlers.NewMonthlyCostHandler(db)
	mux.Handle("/work-logs", protect(listCreate(wlh.List, wlh.Create)))
	mux.Handle("/workers", protect(onlyMethod(http.MethodGet, wlh.Workers)))
	mux.Handle("/paint-purchases", protect(listCreate(ph.List, ph.Create)))
	mux.Handle("/paint-purchases/delete", protect(onlyMethod(http.MethodPost, ph.Delete)))
	mux.Handle("/monthly-costs", protect(listCreate(mch.List, mch.Upsert)))
	mux.Handle("/monthly-costs/delete", protect(onlyMethod(http.MethodPost, mch.Delete)))

	// --- Finance & reports ---
	fh := handlers.NewFinanceHandler(db)
	mux.Handle("/finance/summary", protect(onlyMethod(http.MethodGet, fh.Summary)))
	mux.Handle("/reports/workers", protect(onlyMethod(http.MethodGet, fh.WorkerReport)))

	// --- Realtime order change stream ---
	eh := handlers.NewEventsHandler(bus)
	mux.Handle("/orders/events", protect(onlyMethod(http.MethodGet, eh.Stream)))

	return withRecover(withLogging(mux))
}

// listCreate dispatches GET to list and POST to create on one path.
func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

func onlyMethod(method string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
