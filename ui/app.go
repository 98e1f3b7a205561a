package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goassay/app"
	"goassay/internal/testkit"
)

// App is the lightweight demo application: a chi router over testkit
// fixtures, no database required. It exists so the engine can be explored
// without any setup.
type App struct {
	router *chi.Mux
	kit    *testkit.TestKit
	port   string
}

// AppConfig holds demo application configuration
type AppConfig struct {
	Port string
}

// NewApp creates the demo application
func NewApp(config AppConfig) *App {
	a := &App{
		router: chi.NewRouter(),
		kit:    testkit.NewTestKit(),
		port:   config.Port,
	}
	a.routes()
	return a
}

// Start runs the demo server
func (a *App) Start() error {
	return http.ListenAndServe(":"+a.port, a.router)
}

func (a *App) routes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"name":      "goassay demo",
			"endpoints": []string{"/experiments", "/comparison", "/comparison/report"},
		})
	})

	a.router.Get("/experiments", a.handleExperiments)
	a.router.Get("/comparison", a.handleComparison)
	a.router.Get("/comparison/report", a.handleComparisonReport)
}

func (a *App) handleExperiments(w http.ResponseWriter, r *http.Request) {
	experiments, err := a.kit.Experiments.List(r.Context(), 0, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"experiments": experiments})
}

func (a *App) handleComparison(w http.ResponseWriter, r *http.Request) {
	result, err := a.kit.Service.Compare(r.Context(), app.CompareRequest{
		Inputs:         testkit.FixtureComparisonInputs(),
		ExpectedVolume: 1000,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (a *App) handleComparisonReport(w http.ResponseWriter, r *http.Request) {
	result, err := a.kit.Service.Compare(r.Context(), app.CompareRequest{
		Inputs:         testkit.FixtureComparisonInputs(),
		ExpectedVolume: 1000,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(RenderHTML(BuildMarkdownReport(result))); err != nil {
		fmt.Println("failed to write report:", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
