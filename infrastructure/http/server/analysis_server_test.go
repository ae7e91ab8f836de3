package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"docusense/domain"
	apperrors "docusense/errors"
	"docusense/mocks"
	"docusense/repositories"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var sampleResult = domain.AnalysisResult{
	Summary:       "- Revenue grew",
	Sentiment:     lo.ToPtr("positive"),
	Tone:          lo.ToPtr("formal"),
	QualityScore:  0.826,
	Justification: "Clear.",
}

func setupServer(t *testing.T) (*httptest.Server, *mocks.MockIAnalyzerService, *mocks.MockIAnalysisRepository) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIAnalyzerService(ctrl)
	repository := mocks.NewMockIAnalysisRepository(ctrl)

	router := NewRouter(log, NewAnalysisServer(log, service, repository, 4*domain.MB))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, service, repository
}

func TestAnalysisServer_Analyze_Text(t *testing.T) {
	req := require.New(t)
	server, service, repository := setupServer(t)
	content := strings.Repeat("Revenue grew in every region. ", 3)

	service.EXPECT().Analyze(gomock.Any(), domain.AnalyzeRequest{
		DocumentContent: content, SummaryType: "deep", InputType: "text",
	}).Return(domain.SuccessState("Summary generated successfully.", sampleResult))

	var stored repositories.Analysis
	repository.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, analysis repositories.Analysis) error {
			stored = analysis
			return nil
		})

	form := url.Values{
		FieldDocumentContent: {content},
		FieldSummaryType:     {"deep"},
		FieldInputType:       {"text"},
	}
	resp, err := http.PostForm(server.URL+"/api/v1/analyses", form)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var body AnalyzeResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(domain.StatusSuccess, body.Status)
	req.Equal(sampleResult, *body.Result)
	req.Equal(stored.ID.String(), body.ID)
	req.Equal(domain.InputText, stored.InputType)
	req.Equal(domain.ModeDeep, stored.SummaryType)
	req.Empty(stored.FileName)
}

func TestAnalysisServer_Analyze_File(t *testing.T) {
	req := require.New(t)
	server, service, repository := setupServer(t)
	data := []byte(strings.Repeat("Plain text report line.\n", 5))

	service.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, request domain.AnalyzeRequest) domain.RequestState {
			req.Equal("file", request.InputType)
			req.NotNil(request.DocumentFile)
			req.Equal("notes.txt", request.DocumentFile.Name)
			req.Equal("text/plain", request.DocumentFile.DeclaredMimeType)
			req.Equal(data, request.DocumentFile.Bytes)
			req.Equal(int64(len(data)), request.DocumentFile.Size)
			return domain.SuccessState("Summary generated successfully.", sampleResult)
		})
	repository.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, analysis repositories.Analysis) error {
			req.Equal("notes.txt", analysis.FileName)
			return nil
		})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	req.NoError(writer.WriteField(FieldSummaryType, "quick"))
	req.NoError(writer.WriteField(FieldInputType, "file"))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="documentFile"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	req.NoError(err)
	_, err = part.Write(data)
	req.NoError(err)
	req.NoError(writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/analyses", writer.FormDataContentType(), &buf)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
}

func TestAnalysisServer_Analyze_ErrorStateIsNotStored(t *testing.T) {
	req := require.New(t)
	server, service, _ := setupServer(t)

	service.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		Return(domain.ErrorState("Please paste text (min 50 chars)."))

	resp, err := http.PostForm(server.URL+"/api/v1/analyses", url.Values{
		FieldDocumentContent: {"short"}, FieldSummaryType: {"quick"}, FieldInputType: {"text"},
	})
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal("error", body["status"])
	req.Equal("Please paste text (min 50 chars).", body["message"])
	req.Nil(body["result"])
	req.NotContains(body, "id")
}

func TestAnalysisServer_Analyze_StoreFailureKeepsResult(t *testing.T) {
	req := require.New(t)
	server, service, repository := setupServer(t)

	service.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		Return(domain.SuccessState("Summary generated successfully.", sampleResult))
	repository.EXPECT().Store(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	resp, err := http.PostForm(server.URL+"/api/v1/analyses", url.Values{
		FieldDocumentContent: {strings.Repeat("x", 60)}, FieldSummaryType: {"quick"}, FieldInputType: {"text"},
	})
	req.NoError(err)
	defer resp.Body.Close()

	var body AnalyzeResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(domain.StatusSuccess, body.Status)
	req.Empty(body.ID)
}

func TestAnalysisServer_Get(t *testing.T) {
	server, _, repository := setupServer(t)
	id := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		description string
		path        string
		setup       func()
		status      int
	}{
		{
			description: "Stored analysis",
			path:        "/api/v1/analyses/" + id.String(),
			setup: func() {
				repository.EXPECT().Get(gomock.Any(), id).Return(repositories.Analysis{
					ID: id, At: at, InputType: domain.InputText, SummaryType: domain.ModeDeep, Result: sampleResult,
				}, nil)
			},
			status: http.StatusOK,
		},
		{
			description: "Unknown analysis",
			path:        "/api/v1/analyses/" + id.String(),
			setup: func() {
				repository.EXPECT().Get(gomock.Any(), id).Return(repositories.Analysis{}, apperrors.ErrAnalysisNotFound)
			},
			status: http.StatusNotFound,
		},
		{
			description: "Malformed id",
			path:        "/api/v1/analyses/not-a-uuid",
			setup:       func() {},
			status:      http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			tt.setup()
			resp, err := http.Get(server.URL + tt.path)
			req.NoError(err)
			defer resp.Body.Close()
			req.Equal(tt.status, resp.StatusCode)

			if tt.status == http.StatusOK {
				var view AnalysisView
				req.NoError(json.NewDecoder(resp.Body).Decode(&view))
				req.Equal(id.String(), view.ID)
				req.True(at.Equal(view.At))
				req.Equal(sampleResult, view.Result)
			}
		})
	}
}

func TestAnalysisServer_Export(t *testing.T) {
	req := require.New(t)
	server, _, repository := setupServer(t)
	id := uuid.New()

	repository.EXPECT().Get(gomock.Any(), id).
		Return(repositories.Analysis{ID: id, Result: sampleResult}, nil)

	resp, err := http.Get(server.URL + "/api/v1/analyses/" + id.String() + "/export?format=txt")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	req.Equal(`attachment; filename=text-summarizer-summary.txt`, resp.Header.Get("Content-Disposition"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	req.NoError(err)
	req.True(strings.HasPrefix(buf.String(), "DOCUMENT SUMMARY"))
	req.Contains(buf.String(), "Quality Score: 83%")
	req.Contains(buf.String(), "Sentiment: positive\nTone: formal")

	resp, err = http.Get(server.URL + "/api/v1/analyses/" + id.String() + "/export?format=pdf")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisServer_Search(t *testing.T) {
	req := require.New(t)
	server, _, repository := setupServer(t)
	found := repositories.Analysis{ID: uuid.New(), Result: sampleResult}
	cursor := "0000000000000000001:" + found.ID.String()

	repository.EXPECT().Search(gomock.Any(), "revenue").Return([]repositories.Analysis{found}, nil)
	repository.EXPECT().List(gomock.Any(), nil).Return([]repositories.Analysis{found}, &cursor, nil)

	resp, err := http.Get(server.URL + "/api/v1/analyses?q=revenue")
	req.NoError(err)
	defer resp.Body.Close()
	var searched SearchResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&searched))
	req.Len(searched.Items, 1)
	req.Equal(found.ID.String(), searched.Items[0].ID)
	req.Nil(searched.NextCursor)

	resp, err = http.Get(server.URL + "/api/v1/analyses")
	req.NoError(err)
	defer resp.Body.Close()
	var listed SearchResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&listed))
	req.Len(listed.Items, 1)
	req.Equal(cursor, *listed.NextCursor)
}

func TestHealthz(t *testing.T) {
	req := require.New(t)
	server, _, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
}

func TestAnalysisServer_Analyze_BodyTooLarge(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIAnalyzerService(ctrl)
	repository := mocks.NewMockIAnalysisRepository(ctrl)
	server := httptest.NewServer(NewRouter(log, NewAnalysisServer(log, service, repository, domain.KB)))
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	req.NoError(writer.WriteField(FieldSummaryType, "quick"))
	req.NoError(writer.WriteField(FieldInputType, "file"))
	part, err := writer.CreateFormFile(FieldDocumentFile, "huge.txt")
	req.NoError(err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 3*domain.MB))
	req.NoError(err)
	req.NoError(writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/analyses", writer.FormDataContentType(), &buf)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var body AnalyzeResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(domain.StatusError, body.Status)
	req.Equal("File size must be less than 1KB.", body.Message)
	req.Nil(body.Result)
	req.Empty(body.ID)
}
