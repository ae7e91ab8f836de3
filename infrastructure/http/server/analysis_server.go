package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"docusense/domain"
	apperrors "docusense/errors"
	"docusense/export"
	"docusense/ingestion"
	"docusense/repositories"
	"docusense/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const multipartMemory = 8 * domain.MB

type AnalysisServer struct {
	log         *slog.Logger
	service     services.IAnalyzerService
	repository  repositories.IAnalysisRepository
	maxFileSize int64
	maxBody     int64
}

// NewAnalysisServer accepts request bodies up to twice the maximum file size
// so that oversized uploads still reach ingestion and get its message.
func NewAnalysisServer(log *slog.Logger, service services.IAnalyzerService, repository repositories.IAnalysisRepository, maxFileSize int64) *AnalysisServer {
	return &AnalysisServer{
		log:         log,
		service:     service,
		repository:  repository,
		maxFileSize: maxFileSize,
		maxBody:     2*maxFileSize + domain.MB,
	}
}

func (s *AnalysisServer) RegisterHTTP(r chi.Router) {
	r.Route("/api/v1/analyses", func(r chi.Router) {
		r.Post("/", s.handleAnalyze)
		r.Get("/", s.handleSearch)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/export", s.handleExport)
	})
}

// handleAnalyze always answers 200 with the request state: pipeline
// failures are part of the state, not transport errors.
// POST /api/v1/analyses
func (s *AnalysisServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	request, err := s.parseForm(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusOK, AnalyzeResponse{RequestState: domain.ErrorState(ingestion.FileTooLargeMessage(s.maxFileSize))})
			return
		}
		s.log.Info("Unreadable analysis form", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state := s.service.Analyze(r.Context(), request)
	response := AnalyzeResponse{RequestState: state}
	if state.Status == domain.StatusSuccess && state.Result != nil {
		analysis := repositories.Analysis{
			ID:          uuid.New(),
			At:          time.Now().UTC(),
			InputType:   domain.InputType(request.InputType),
			SummaryType: domain.SummaryMode(request.SummaryType),
			Result:      *state.Result,
		}
		if request.DocumentFile != nil && analysis.InputType == domain.InputFile {
			analysis.FileName = request.DocumentFile.Name
		}
		if err := s.repository.Store(r.Context(), analysis); err != nil {
			s.log.Error("Failed to store analysis", "error", err)
		} else {
			response.ID = analysis.ID.String()
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *AnalysisServer) parseForm(r *http.Request) (domain.AnalyzeRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return domain.AnalyzeRequest{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return domain.AnalyzeRequest{}, err
	}

	request := domain.AnalyzeRequest{
		DocumentContent: r.FormValue(FieldDocumentContent),
		SummaryType:     r.FormValue(FieldSummaryType),
		InputType:       r.FormValue(FieldInputType),
	}
	if r.MultipartForm == nil {
		return request, nil
	}

	file, header, err := r.FormFile(FieldDocumentFile)
	if errors.Is(err, http.ErrMissingFile) {
		return request, nil
	}
	if err != nil {
		return domain.AnalyzeRequest{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.AnalyzeRequest{}, fmt.Errorf("reading %s: %w", header.Filename, err)
	}
	request.DocumentFile = &domain.FileInput{
		Name:             header.Filename,
		Bytes:            data,
		DeclaredMimeType: header.Header.Get("Content-Type"),
		Size:             header.Size,
	}
	return request, nil
}

// GET /api/v1/analyses/{id}
func (s *AnalysisServer) handleGet(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toView(analysis))
}

// GET /api/v1/analyses/{id}/export?format=md|txt
func (s *AnalysisServer) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	analysis, ok := s.load(w, r)
	if !ok {
		return
	}
	content, err := export.Render(format, analysis.Result)
	if err != nil {
		s.log.Error("Export failed", "id", analysis.ID, "format", format, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "export failed"})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": format.Filename()}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

// GET /api/v1/analyses?q=...&cursor=...
func (s *AnalysisServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var (
		analyses []repositories.Analysis
		next     *string
		err      error
	)
	if query == "" {
		analyses, next, err = s.repository.List(r.Context(), lo.EmptyableToPtr(r.URL.Query().Get("cursor")))
	} else {
		analyses, err = s.repository.Search(r.Context(), query)
	}
	if err != nil {
		s.log.Error("Search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items:      lo.Map(analyses, func(a repositories.Analysis, _ int) AnalysisView { return toView(a) }),
		NextCursor: next,
	})
}

func (s *AnalysisServer) load(w http.ResponseWriter, r *http.Request) (repositories.Analysis, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid analysis id"})
		return repositories.Analysis{}, false
	}
	analysis, err := s.repository.Get(r.Context(), id)
	if errors.Is(err, apperrors.ErrAnalysisNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return repositories.Analysis{}, false
	}
	if err != nil {
		s.log.Error("Failed to load analysis", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load analysis"})
		return repositories.Analysis{}, false
	}
	return analysis, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
