package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/api"
	"github.com/drshravan/phc-helper-api/api/scheduler"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
	client    databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewWorkerDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	recordDB := databases.NewAncRecordDatabase(a.dbHelper)
	summaryDB := databases.NewSummaryDatabase(a.dbHelper)
	ledger := ancstats.NewLedger(recordDB, summaryDB, a.client)

	anc := Anc{DB: recordDB, Ledger: ledger}
	summary := Summary{DB: summaryDB, Ledger: ledger}
	dogBite := DogBite{DB: databases.NewDogBiteDatabase(a.dbHelper)}
	subCenter := SubCenter{DB: databases.NewSubCenterDatabase(a.dbHelper)}
	holiday := Holiday{DB: databases.NewHolidayDatabase(a.dbHelper)}
	worker := Worker{DB: databases.NewWorkerDatabase(a.dbHelper)}
	admin := Admin{DB: databases.NewWorkerDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/admin/login", http.HandlerFunc(admin.AdminLoginHandler)).Methods("POST")

	apiCreate.Handle("/anc", api.Middleware(http.HandlerFunc(anc.CreateAncRecordHandler))).Methods("POST")
	apiCreate.Handle("/anc", api.Middleware(http.HandlerFunc(anc.AncRecordsHandler))).Methods("GET")
	apiCreate.Handle("/anc/import", api.Middleware(http.HandlerFunc(anc.ImportAncRecordsHandler))).Methods("POST")
	apiCreate.Handle("/anc/months/{month_group}", api.AdminMiddleware(http.HandlerFunc(anc.DeleteMonthHandler))).Methods("DELETE")
	apiCreate.Handle("/anc/{record_id}", api.Middleware(http.HandlerFunc(anc.AncRecordByIDHandler))).Methods("GET")
	apiCreate.Handle("/anc/{record_id}", api.Middleware(http.HandlerFunc(anc.UpdateAncRecordHandler))).Methods("PUT")
	apiCreate.Handle("/anc/{record_id}", api.Middleware(http.HandlerFunc(anc.DeleteAncRecordHandler))).Methods("DELETE")

	apiCreate.Handle("/summaries", api.Middleware(http.HandlerFunc(summary.SummariesHandler))).Methods("GET")
	apiCreate.Handle("/summaries/rebuild", api.AdminMiddleware(http.HandlerFunc(summary.RebuildHandler))).Methods("POST")
	apiCreate.Handle("/summaries/{month_group}", api.Middleware(http.HandlerFunc(summary.SummaryByMonthHandler))).Methods("GET")

	apiCreate.Handle("/dogbite", api.Middleware(http.HandlerFunc(dogBite.CreateDogBiteHandler))).Methods("POST")
	apiCreate.Handle("/dogbite", api.Middleware(http.HandlerFunc(dogBite.DogBitesHandler))).Methods("GET")
	apiCreate.Handle("/dogbite/due", api.Middleware(http.HandlerFunc(dogBite.DosesDueHandler))).Methods("GET")
	apiCreate.Handle("/dogbite/{case_id}", api.Middleware(http.HandlerFunc(dogBite.DogBiteByIDHandler))).Methods("GET")
	apiCreate.Handle("/dogbite/{case_id}", api.Middleware(http.HandlerFunc(dogBite.UpdateDogBiteHandler))).Methods("PUT")
	apiCreate.Handle("/dogbite/{case_id}", api.Middleware(http.HandlerFunc(dogBite.DeleteDogBiteHandler))).Methods("DELETE")
	apiCreate.Handle("/dogbite/{case_id}/doses/{day}", api.Middleware(http.HandlerFunc(dogBite.MarkDoseGivenHandler))).Methods("PUT")

	apiCreate.Handle("/calculators/pregnancy", api.Middleware(http.HandlerFunc(PregnancyCalculatorHandler))).Methods("GET")

	apiCreate.Handle("/subcenters", api.Middleware(http.HandlerFunc(subCenter.SubCentersHandler))).Methods("GET")
	apiCreate.Handle("/subcenters", api.Middleware(http.HandlerFunc(subCenter.CreateSubCenterHandler))).Methods("POST")
	apiCreate.Handle("/subcenters/{subcenter_id}", api.Middleware(http.HandlerFunc(subCenter.UpdateSubCenterHandler))).Methods("PUT")

	apiCreate.Handle("/holidays", api.Middleware(http.HandlerFunc(holiday.HolidaysHandler))).Methods("GET")
	apiCreate.Handle("/holidays", api.AdminMiddleware(http.HandlerFunc(holiday.CreateHolidayHandler))).Methods("POST")
	apiCreate.Handle("/holidays/{date}", api.AdminMiddleware(http.HandlerFunc(holiday.DeleteHolidayHandler))).Methods("DELETE")

	apiCreate.Handle("/worker/create-worker", api.AdminMiddleware(http.HandlerFunc(worker.WorkerCreateHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("phc-helper-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	// start background jobs
	recordDB := databases.NewAncRecordDatabase(a.dbHelper)
	summaryDB := databases.NewSummaryDatabase(a.dbHelper)
	a.Scheduler = scheduler.NewScheduler(
		ancstats.NewLedger(recordDB, summaryDB, a.client),
		summaryDB,
		databases.NewSchedulerLockDatabase(a.dbHelper),
		&a.Config,
	)
	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
