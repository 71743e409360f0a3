package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/listenupapp/bookrec/internal/domain"
	domainerrors "github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/service"
	"github.com/listenupapp/bookrec/internal/store"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplates = template.Must(template.ParseFS(templates, "templates/*.html"))

// maxFormBytes bounds the query form body.
const maxFormBytes = 16 << 10

func (s *Server) registerWebRoutes() {
	s.router.Get("/", s.handleInputPage)
	s.router.Post("/", s.handleSubmitQuery)
}

// inputPageData contains data for the query form template.
type inputPageData struct {
	Username  string
	InputData string
	Error     string
}

// resultRow is one displayed recommendation.
type resultRow struct {
	Name   string
	Genre  string
	Rating string
}

// resultsPageData contains data for the recommendations page template.
type resultsPageData struct {
	Username        string
	Query           string
	Degraded        bool
	Recommendations []resultRow
	Suggestions     []string
}

// handleInputPage serves the query form.
// GET /
func (s *Server) handleInputPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "index.html", inputPageData{})
}

// handleSubmitQuery runs the pipeline for a form submission and renders
// the list read back from the recommendation store. Any choice other than
// "by book title" sends the user back to the form.
// POST /
func (s *Server) handleSubmitQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := service.RecommendRequest{
		Username:  r.PostFormValue("username"),
		Choice:    r.PostFormValue("choice"),
		InputData: r.PostFormValue("input_data"),
	}

	if req.Choice != domain.ChoiceByBook {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	result, err := s.service.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidation) {
			var domainErr *domainerrors.Error
			errors.As(err, &domainErr)
			s.render(w, http.StatusBadRequest, "index.html", inputPageData{
				Username:  req.Username,
				InputData: req.InputData,
				Error:     domainErr.Message,
			})
			return
		}
		logger.FromContext(r.Context(), s.logger).Error("Failed to run recommendation", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rows := make([]resultRow, len(result.Persisted))
	for i, rec := range result.Persisted {
		rows[i] = resultRow{Name: rec.Name, Genre: rec.Genre, Rating: store.FormatRating(rec.Rating)}
	}

	s.render(w, http.StatusOK, "results.html", resultsPageData{
		Username:        req.Username,
		Query:           req.InputData,
		Degraded:        result.CatalogStatus == domain.LoadStatusDegraded,
		Recommendations: rows,
		Suggestions:     result.Suggestions,
	})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}
