package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/agenda/server/backup"
	"github.com/Daskott/agenda/server/cron"
	"github.com/Daskott/agenda/server/gstorage"
	"github.com/Daskott/agenda/server/logger"
	"github.com/Daskott/agenda/server/models"
	"github.com/Daskott/agenda/server/receipts"
	"github.com/Daskott/agenda/shared"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
)

var logg = logger.NewLogger()

// Repository is the persistence the handlers need. *models.Store
// implements it.
type Repository interface {
	ListPersons(query string, page int) ([]models.Person, *models.Paging, error)
	AllPersons() ([]models.Person, error)
	FindPerson(id uint) (*models.Person, error)
	CreatePerson(person *models.Person) error
	UpdatePerson(id uint, person *models.Person) error
	DeletePerson(id uint) error
	ListExpenses(page int) ([]models.Expense, *models.Paging, error)
	AllExpenses() ([]models.Expense, error)
	CreateExpense(expense *models.Expense) error
}

type Server struct {
	repo      Repository
	receipts  receipts.Store
	templates *templates
}

func NewServer(repo Repository, receiptStore receipts.Store) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{repo: repo, receipts: receiptStore, templates: tmpl}, nil
}

// Router wires every route of the application.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.NotFoundHandler = http.HandlerFunc(s.notFound)
	router.Use(loggingMiddleware, recoverMiddleware)

	router.HandleFunc("/", s.home).Methods(http.MethodGet)

	personRouter := router.PathPrefix("/person").Subrouter()
	personRouter.HandleFunc("/", s.listPersons).Methods(http.MethodGet)
	personRouter.HandleFunc("/add/", s.createPerson).Methods(http.MethodGet, http.MethodPost)
	personRouter.HandleFunc("/{id:[0-9]+}/", s.detailPerson).Methods(http.MethodGet)
	personRouter.HandleFunc("/{id:[0-9]+}/edit/", s.updatePerson).Methods(http.MethodGet, http.MethodPost)
	personRouter.HandleFunc("/{id:[0-9]+}/delete/", s.deletePerson).Methods(http.MethodGet, http.MethodPost)

	expenseRouter := router.PathPrefix("/expense").Subrouter()
	expenseRouter.HandleFunc("/", s.listExpenses).Methods(http.MethodGet)
	expenseRouter.HandleFunc("/add/", s.createExpense).Methods(http.MethodGet, http.MethodPost)
	expenseRouter.HandleFunc("/print/", s.printExpenses).Methods(http.MethodGet)

	return router
}

// Start runs the agenda server until it receives SIGINT or SIGTERM.
func Start(config shared.ServerConfig, devMode bool) {
	var err error

	logg, err = logger.New(config.Agenda.LogLevel, devMode)
	fatalOnError(err)

	fatalOnError(validator.New().Struct(config))

	if config.Database.Driver != models.POSTGRES_DRIVER && config.Database.Sqlite.Dir == "" {
		config.Database.Sqlite.Dir = configDirectory(devMode)
	}

	var gStorage *gstorage.GStorage
	storageConfig := config.Google.Storage
	if storageConfig.Receipts || storageConfig.EnableSqliteBackup {
		gStorage, err = gstorage.NewGStorage(config.Google.ApplicationCredentials)
		fatalOnError(err)
	}

	var sqliteBackup *backup.SqliteBackup
	if storageConfig.EnableSqliteBackup && config.Database.Driver != models.POSTGRES_DRIVER {
		dbFile, err := models.SqliteFilePath(config.Database.Sqlite.Dir)
		fatalOnError(err)

		sqliteBackup = backup.NewSqliteBackup(gStorage, storageConfig.Bucket, storageConfig.Prefix, dbFile, logg)
		fatalOnError(sqliteBackup.Restore(context.Background()))
	}

	store, err := models.Open(config.Database)
	fatalOnError(err)

	if sqliteBackup != nil {
		sqliteBackup.WithCheckpoint(store.Checkpoint)
	}

	var receiptStore receipts.Store = receipts.NewLocal(mediaDirectory(config.Media.Dir, devMode))
	if storageConfig.Receipts {
		receiptStore = receipts.NewGCS(gStorage, storageConfig.Bucket, storageConfig.Prefix)
	}

	scheduler := cron.NewCronScheduler(config.Agenda.Cron.TimeZone)
	if sqliteBackup != nil {
		fatalOnError(sqliteBackup.Schedule(scheduler, storageConfig.SqliteBackupSchedule))
	}
	scheduler.StartAsync()

	app, err := NewServer(store, receiptStore)
	fatalOnError(err)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", config.Agenda.Listener.Port),
		Handler:      app.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, server, sqliteBackup, store, gStorage)
}
