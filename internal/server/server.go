package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/household/internal/handler"
	"github.com/dukerupert/household/internal/middleware"
	"github.com/dukerupert/household/internal/store"
	ws "github.com/dukerupert/household/internal/websocket"
)

const (
	apiName    = "Household AI Assistant API"
	apiVersion = "1.0.0"
)

type Server struct {
	hub          *ws.Hub
	registry     *prometheus.Registry
	metrics      *middleware.Metrics
	corsOrigins  []string
	userH        *handler.UserHandler
	storeH       *handler.StoreHandler
	itemH        *handler.ItemHandler
	groceryH     *handler.GroceryHandler
	templateH    *handler.TemplateHandler
	providerH    *handler.ProviderHandler
	appointmentH *handler.AppointmentHandler
	taskH        *handler.TaskHandler
	logger       *slog.Logger
}

// New wires stores, handlers and the change-feed hub over db. corsOrigins
// applies to both the REST API and websocket upgrades.
func New(db *sql.DB, corsOrigins []string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		hub:          hub,
		registry:     registry,
		metrics:      middleware.NewMetrics(registry),
		corsOrigins:  corsOrigins,
		userH:        handler.NewUserHandler(store.NewUserStore(db), hub, logger.With("component", "user")),
		storeH:       handler.NewStoreHandler(store.NewStoreStore(db), hub, logger.With("component", "store")),
		itemH:        handler.NewItemHandler(store.NewItemStore(db), hub, logger.With("component", "item")),
		groceryH:     handler.NewGroceryHandler(store.NewGroceryStore(db), hub, logger.With("component", "grocery")),
		templateH:    handler.NewTemplateHandler(store.NewTemplateStore(db), hub, logger.With("component", "template")),
		providerH:    handler.NewProviderHandler(store.NewProviderStore(db), hub, logger.With("component", "provider")),
		appointmentH: handler.NewAppointmentHandler(store.NewAppointmentStore(db), hub, logger.With("component", "appointment")),
		taskH:        handler.NewTaskHandler(store.NewTaskStore(db), hub, logger.With("component", "task")),
		logger:       logger,
	}
}

// Hub returns the change-feed hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.rootHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.corsOrigins))

	s.registerAPIRoutes(mux)

	var h http.Handler = mux
	h = s.metrics.Handler(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	h = middleware.RequestID(h)
	h = cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(h)
	return h
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)

	mux.HandleFunc("GET /api/stores", s.storeH.List)
	mux.HandleFunc("POST /api/stores", s.storeH.Create)
	mux.HandleFunc("GET /api/stores/{id}", s.storeH.Get)
	mux.HandleFunc("PUT /api/stores/{id}", s.storeH.Update)
	mux.HandleFunc("DELETE /api/stores/{id}", s.storeH.Delete)

	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("GET /api/items/{id}", s.itemH.Get)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("GET /api/items/{id}/stores", s.itemH.GetStores)
	mux.HandleFunc("PUT /api/items/{id}/stores", s.itemH.SetStores)

	mux.HandleFunc("GET /api/grocery-items", s.groceryH.List)
	mux.HandleFunc("POST /api/grocery-items", s.groceryH.Create)
	mux.HandleFunc("POST /api/grocery-items/clear-purchased", s.groceryH.ClearPurchased)
	mux.HandleFunc("GET /api/grocery-items/{id}", s.groceryH.Get)
	mux.HandleFunc("PUT /api/grocery-items/{id}", s.groceryH.Update)
	mux.HandleFunc("DELETE /api/grocery-items/{id}", s.groceryH.Delete)

	mux.HandleFunc("GET /api/grocery-templates", s.templateH.List)
	mux.HandleFunc("POST /api/grocery-templates", s.templateH.Create)
	mux.HandleFunc("GET /api/grocery-templates/{id}", s.templateH.Get)
	mux.HandleFunc("PUT /api/grocery-templates/{id}", s.templateH.Update)
	mux.HandleFunc("DELETE /api/grocery-templates/{id}", s.templateH.Delete)
	mux.HandleFunc("POST /api/grocery-templates/{id}/items", s.templateH.AddItem)
	mux.HandleFunc("DELETE /api/grocery-templates/{id}/items/{item_id}", s.templateH.RemoveItem)
	mux.HandleFunc("POST /api/grocery-templates/{id}/apply", s.templateH.Apply)

	mux.HandleFunc("GET /api/providers", s.providerH.List)
	mux.HandleFunc("POST /api/providers", s.providerH.Create)
	mux.HandleFunc("GET /api/providers/{id}", s.providerH.Get)
	mux.HandleFunc("PUT /api/providers/{id}", s.providerH.Update)
	mux.HandleFunc("DELETE /api/providers/{id}", s.providerH.Delete)

	mux.HandleFunc("GET /api/appointments", s.appointmentH.List)
	mux.HandleFunc("POST /api/appointments", s.appointmentH.Create)
	mux.HandleFunc("GET /api/appointments/{id}", s.appointmentH.Get)
	mux.HandleFunc("PUT /api/appointments/{id}", s.appointmentH.Update)
	mux.HandleFunc("DELETE /api/appointments/{id}", s.appointmentH.Delete)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    apiName,
		"version": apiVersion,
		"endpoints": map[string]string{
			"users":         "/api/users",
			"stores":        "/api/stores",
			"items":         "/api/items",
			"grocery_items": "/api/grocery-items",
			"templates":     "/api/grocery-templates",
			"providers":     "/api/providers",
			"appointments":  "/api/appointments",
			"tasks":         "/api/tasks",
			"events":        "/ws",
		},
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
