package server

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Daskott/agenda/server/backup"
	"github.com/Daskott/agenda/server/gstorage"
	"github.com/Daskott/agenda/server/models"
	"github.com/Daskott/agenda/utils"
	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

// render executes page into a buffer first so a template failure still
// produces a clean 500.
func (s *Server) render(rw http.ResponseWriter, page string, data interface{}, statusCode int) {
	var buf bytes.Buffer
	if err := s.templates.execute(&buf, page, data); err != nil {
		logg.Errorf("render %v: %v", page, err)
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(statusCode)
	rw.Write(buf.Bytes())
}

func (s *Server) renderError(rw http.ResponseWriter, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(message)
		message = "Ocorreu um erro inesperado. Tente novamente mais tarde."
	} else {
		logg.Info(message)
	}

	s.render(rw, "error.html", errorPage{Status: statusCode, Message: message}, statusCode)
}

func (s *Server) notFound(rw http.ResponseWriter, r *http.Request) {
	s.renderError(rw, http.StatusNotFound, "Página não encontrada.")
}

// idParam reads the {id} route variable. ok is false when it does not fit
// in an id, which callers treat as not found.
func idParam(r *http.Request) (id uint, ok bool) {
	value, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(value), true
}

// pageParam reads ?page=, defaulting to 1. "last" is not supported.
func pageParam(r *http.Request) (int, bool) {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1, true
	}

	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, false
	}

	return page, true
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Agenda server is listening on %v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(
	scheduler *gocron.Scheduler,
	server *http.Server,
	sqliteBackup *backup.SqliteBackup,
	store *models.Store,
	gStorage *gstorage.GStorage,
) {
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("Agenda server shutdown failed:%+s", err)
	}

	if sqliteBackup != nil {
		if err := sqliteBackup.Upload(context.Background()); err != nil {
			logg.Errorf("final sqlite backup failed: %v", err)
		}
	}

	if err := store.Close(); err != nil {
		logg.Errorf("closing database: %v", err)
	}

	if gStorage != nil {
		gStorage.Close()
	}

	logg.Infof("Agenda server stopped properly")
}

// configDirectory retrieves the directory to store agenda data
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'agenda' folder in home directory for prod
	configFolderName := "agenda"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func mediaDirectory(dir string, devMode bool) string {
	if dir == "" {
		dir = configDirectory(devMode)
	}

	fatalOnError(utils.CreateDirIfNotExist(dir))
	return dir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
