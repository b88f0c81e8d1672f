package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"khet.pk/farm/handlers"
	"khet.pk/farm/middleware"
	"khet.pk/farm/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(http.HandlerFunc(handlers.GetCurrentUser))).Methods("GET")

	// =====================================================
	// Cron Routes (shared-secret header, no JWT)
	// =====================================================
	r.Handle("/api/v1/reminders/generate-weekly",
		middleware.CronAuth(http.HandlerFunc(handlers.GenerateWeeklyReminders))).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	registerFarmRoutes(api)
	registerInputRoutes(api)
	registerReminderRoutes(api)
	registerReportRoutes(api)

	// =====================================================
	// Admin Routes (require admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// registerFarmRoutes registers plots, crops, caretakers and the lifecycle
// event timeline.
func registerFarmRoutes(api *mux.Router) {
	// The locate route must come before /{id}.
	api.HandleFunc("/plots/locate", handlers.LocatePlot).Methods("GET")
	registerCRUDRoutes(api, "/plots", crudHandlers{
		getAll: handlers.GetAllPlots,
		create: handlers.CreatePlot,
		getOne: handlers.GetPlot,
		update: handlers.UpdatePlot,
		delete: handlers.DeletePlot,
	})

	registerCRUDRoutes(api, "/crops", crudHandlers{
		getAll: handlers.GetAllCrops,
		create: handlers.CreateCrop,
		getOne: handlers.GetCrop,
		update: handlers.UpdateCrop,
	})

	registerCRUDRoutes(api, "/caretakers", crudHandlers{
		getAll: handlers.GetAllCaretakers,
		create: handlers.CreateCaretaker,
		getOne: handlers.GetCaretaker,
	})

	// The taxonomy route must come before /{id}.
	api.HandleFunc("/lifecycle-events/types", handlers.GetLifecycleEventTypes).Methods("GET")
	registerCRUDRoutes(api, "/lifecycle-events", crudHandlers{
		getAll: handlers.GetAllLifecycleEvents,
		create: handlers.CreateLifecycleEvent,
		getOne: handlers.GetLifecycleEvent,
		update: handlers.UpdateLifecycleEvent,
		delete: handlers.DeleteLifecycleEvent,
	})
}

// registerInputRoutes registers the farm input ledgers.
func registerInputRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/fertilizers", crudHandlers{
		getAll: handlers.GetAllFertilizers,
		create: handlers.CreateFertilizer,
	})
	registerCRUDRoutes(api, "/pesticides", crudHandlers{
		getAll: handlers.GetAllPesticides,
		create: handlers.CreatePesticide,
	})
	registerCRUDRoutes(api, "/irrigations", crudHandlers{
		getAll: handlers.GetAllIrrigations,
		create: handlers.CreateIrrigation,
	})
	registerCRUDRoutes(api, "/expenses", crudHandlers{
		getAll: handlers.GetAllExpenses,
		create: handlers.CreateExpense,
	})
}

func registerReminderRoutes(api *mux.Router) {
	api.HandleFunc("/reminders", handlers.GetAllReminders).Methods("GET")
	api.HandleFunc("/reminders", handlers.CreateReminder).Methods("POST")
	api.HandleFunc("/reminders/upcoming", handlers.GetUpcomingReminders).Methods("GET")
	api.HandleFunc("/reminders/plot/{plotId}", handlers.GetRemindersByPlot).Methods("GET")
	api.HandleFunc("/reminders/{id}/done", handlers.MarkReminderDone).Methods("PATCH")
}

func registerReportRoutes(api *mux.Router) {
	api.HandleFunc("/reports/financial-overview", handlers.GetFinancialOverview).Methods("GET")
	api.HandleFunc("/reports/yield-analysis", handlers.GetYieldAnalysis).Methods("GET")
	api.HandleFunc("/reports/expenses/export", handlers.ExportExpenseLedger).Methods("GET")
}

func registerAdminRoutes(admin *mux.Router) {
	adminOnly := []string{models.RoleAdmin}

	admin.Handle("/users", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	admin.Handle("/users/{id}/deactivate", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.DeactivateUser))).Methods("PATCH")
	admin.Handle("/plots/{id}/restore", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.RestorePlot))).Methods("PATCH")
}

type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource.
// Nil entries are skipped so read-only or append-only resources can reuse it.
func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	if h.getAll != nil {
		router.HandleFunc(path, h.getAll).Methods("GET")
	}
	if h.create != nil {
		router.HandleFunc(path, h.create).Methods("POST")
	}
	if h.getOne != nil {
		router.HandleFunc(path+"/{id}", h.getOne).Methods("GET")
	}
	if h.update != nil {
		router.HandleFunc(path+"/{id}", h.update).Methods("PUT")
	}
	if h.delete != nil {
		router.HandleFunc(path+"/{id}", h.delete).Methods("DELETE")
	}
}
