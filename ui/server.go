package ui

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"goassay/adapters/excel"
	"goassay/app"
	"goassay/domain/assay"
	"goassay/domain/comparison"
	"goassay/domain/core"
	"goassay/domain/cost"
	"goassay/internal"
	"goassay/internal/config"
	apperrors "goassay/internal/errors"
	"goassay/ports"
)

// Server is the JSON API over the comparison engine. It owns no computation:
// every handler delegates to the app services and maps engine errors onto
// HTTP status codes.
type Server struct {
	router      *gin.Engine
	experiments *app.ExperimentService
	comparisons *app.ComparisonService
	studies     ports.StudyRepository
	catalog     ports.TechniqueCatalog
	reader      ports.ExperimentReader
	reports     ports.ReportWriter
	engineCfg   config.EngineConfig
	exportDir   string
	logger      *internal.Logger
}

// Dependencies bundles everything the server needs.
type Dependencies struct {
	Experiments *app.ExperimentService
	Comparisons *app.ComparisonService
	Studies     ports.StudyRepository
	Catalog     ports.TechniqueCatalog
	Reader      ports.ExperimentReader
	Reports     ports.ReportWriter
	EngineCfg   config.EngineConfig
	ExportDir   string
}

// NewServer creates the API server and registers its routes.
func NewServer(deps Dependencies) *Server {
	s := &Server{
		router:      gin.Default(),
		experiments: deps.Experiments,
		comparisons: deps.Comparisons,
		studies:     deps.Studies,
		catalog:     deps.Catalog,
		reader:      deps.Reader,
		reports:     deps.Reports,
		engineCfg:   deps.EngineCfg,
		exportDir:   deps.ExportDir,
		logger:      internal.NewDefaultLogger(),
	}
	s.registerRoutes()
	return s
}

// Start runs the server on the given port.
func (s *Server) Start(port string) error {
	s.logger.Info("Starting goassay API on :%s", port)
	return s.router.Run(":" + port)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.GET("/techniques", s.handleListTechniques)

		api.POST("/experiments", s.handleCreateExperiment)
		api.GET("/experiments", s.handleListExperiments)
		api.GET("/experiments/:id", s.handleGetExperiment)
		api.POST("/experiments/analyze", s.handleAnalyze)

		api.POST("/comparisons", s.handleCompare)
		api.GET("/comparisons", s.handleListStudies)
		api.GET("/comparisons/:id", s.handleGetStudy)
		api.GET("/comparisons/:id/report", s.handleStudyReport)
		api.GET("/comparisons/:id/export", s.handleStudyExport)

		api.POST("/imports", s.handleImport)
		api.GET("/template", s.handleTemplate)
	}
}

// countsRequest is the wire form of a confusion matrix.
type countsRequest struct {
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	TrueNegative  int `json:"true_negative"`
	FalseNegative int `json:"false_negative"`
}

func (r countsRequest) counts() assay.ConfusionCounts {
	return assay.ConfusionCounts{
		TruePositive:  r.TruePositive,
		FalsePositive: r.FalsePositive,
		TrueNegative:  r.TrueNegative,
		FalseNegative: r.FalseNegative,
	}
}

func (s *Server) handleListTechniques(c *gin.Context) {
	type techniqueEntry struct {
		ID    string     `json:"id"`
		Model cost.Model `json:"model"`
	}
	var entries []techniqueEntry
	for _, id := range s.catalog.Techniques() {
		model, err := s.catalog.Model(id)
		if err != nil {
			continue
		}
		entries = append(entries, techniqueEntry{ID: id.String(), Model: model})
	}
	c.JSON(http.StatusOK, gin.H{"techniques": entries})
}

func (s *Server) handleCreateExperiment(c *gin.Context) {
	var req struct {
		Name        string        `json:"name" binding:"required"`
		Description string        `json:"description"`
		Technique   string        `json:"technique" binding:"required"`
		Counts      countsRequest `json:"counts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exp, analysis, err := s.experiments.CreateExperiment(c.Request.Context(), req.Name, req.Description, core.TechniqueID(req.Technique), req.Counts.counts())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"experiment": exp, "analysis": analysis})
}

func (s *Server) handleListExperiments(c *gin.Context) {
	experiments, err := s.experiments.ListExperiments(c.Request.Context(), 100, 0)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiments": experiments})
}

func (s *Server) handleGetExperiment(c *gin.Context) {
	id, err := core.ParseExperimentID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exp, analysis, err := s.experiments.GetExperiment(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiment": exp, "analysis": analysis})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req countsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	analysis, err := s.comparisons.AnalyzeExperiment(c.Request.Context(), req.counts())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// compareRequest is the wire form of a multi-technique comparison. A missing
// cost model falls back to the built-in catalog for that technique.
type compareRequest struct {
	Name       string `json:"name"`
	Techniques []struct {
		TechniqueID string        `json:"technique_id" binding:"required"`
		Counts      countsRequest `json:"counts"`
		CostModel   *cost.Model   `json:"cost_model,omitempty"`
	} `json:"techniques" binding:"required"`
	ExpectedVolume int           `json:"expected_volume"`
	Weights        *cost.Weights `json:"weights,omitempty"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]comparison.TechniqueInput, 0, len(req.Techniques))
	for _, t := range req.Techniques {
		techniqueID := core.TechniqueID(t.TechniqueID)
		model := cost.Model{}
		if t.CostModel != nil {
			model = *t.CostModel
		} else {
			var err error
			model, err = s.catalog.Model(techniqueID)
			if err != nil {
				s.renderError(c, err)
				return
			}
		}
		inputs = append(inputs, comparison.TechniqueInput{
			TechniqueID: techniqueID,
			Counts:      t.Counts.counts(),
			CostModel:   model,
		})
	}

	volume := req.ExpectedVolume
	if volume <= 0 {
		volume = s.engineCfg.ExpectedVolume
	}
	weights := cost.Weights{Cost: s.engineCfg.WeightCost, Accuracy: s.engineCfg.WeightAccuracy}
	if req.Weights != nil {
		weights = *req.Weights
	}

	result, err := s.comparisons.Compare(c.Request.Context(), app.CompareRequest{
		Inputs:         inputs,
		ExpectedVolume: volume,
		Weights:        weights,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("comparison of %d techniques", len(inputs))
	}
	if err := s.studies.Save(c.Request.Context(), name, result); err != nil {
		s.logger.Warn("failed to persist comparison study: %v", err)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListStudies(c *gin.Context) {
	studies, err := s.studies.List(c.Request.Context(), 50, 0)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"studies": studies})
}

func (s *Server) loadStudy(c *gin.Context) (*comparison.Result, bool) {
	id, err := core.ParseStudyID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	result, err := s.studies.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return nil, false
	}
	return result, true
}

func (s *Server) handleGetStudy(c *gin.Context) {
	result, ok := s.loadStudy(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleStudyReport(c *gin.Context) {
	result, ok := s.loadStudy(c)
	if !ok {
		return
	}
	html := RenderHTML(BuildMarkdownReport(result))
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleStudyExport(c *gin.Context) {
	result, ok := s.loadStudy(c)
	if !ok {
		return
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("comparison_%s.xlsx", result.StudyID))
	if err := s.reports.WriteComparison(path, result); err != nil {
		s.renderError(c, err)
		return
	}
	defer os.Remove(path)
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) handleImport(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required"})
		return
	}

	// The reader dispatches on the extension, so the temp file keeps it.
	tmp, err := os.CreateTemp("", "goassay_upload_*"+filepath.Ext(file.Filename))
	if err != nil {
		s.renderError(c, err)
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		s.renderError(c, err)
		return
	}

	result, err := s.experiments.ImportFile(c.Request.Context(), s.reader, tmp.Name())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTemplate(c *gin.Context) {
	path := filepath.Join(os.TempDir(), "goassay_template.xlsx")
	if err := excel.WriteTemplate(path); err != nil {
		s.renderError(c, err)
		return
	}
	defer os.Remove(path)
	c.FileAttachment(path, "goassay_template.xlsx")
}

// renderError maps engine and repository errors onto HTTP status codes.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidMatrix),
		errors.Is(err, core.ErrEmptyComparison),
		errors.Is(err, core.ErrUnknownTechnique):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrUndefinedKappa),
		errors.Is(err, core.ErrUndefinedCostRatio):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed (%s): %v", apperrors.GetCode(err), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
