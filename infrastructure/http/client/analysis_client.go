package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docusense/infrastructure/http/server"

	"github.com/gabriel-vasile/mimetype"
)

// AnalyzeInput is what the CLI submits: either a text or a file path.
type AnalyzeInput struct {
	Text        string
	FilePath    string
	SummaryType string
}

type AnalysisClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalysisClient(baseURL string, timeout time.Duration) *AnalysisClient {
	return &AnalysisClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AnalysisClient) Analyze(ctx context.Context, input AnalyzeInput) (server.AnalyzeResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	inputType := "text"
	if input.FilePath != "" {
		inputType = "file"
		if err := attachFile(writer, input.FilePath); err != nil {
			return server.AnalyzeResponse{}, err
		}
	}
	fields := map[string]string{
		server.FieldDocumentContent: input.Text,
		server.FieldSummaryType:     input.SummaryType,
		server.FieldInputType:       inputType,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return server.AnalyzeResponse{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return server.AnalyzeResponse{}, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/analyses", &body)
	if err != nil {
		return server.AnalyzeResponse{}, err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var response server.AnalyzeResponse
	err = c.do(request, &response)
	return response, err
}

// attachFile declares the sniffed MIME type of the file, as a browser would.
func attachFile(writer *multipart.Writer, path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detecting type of %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     server.FieldDocumentFile,
		"filename": filepath.Base(path),
	}))
	header.Set("Content-Type", mt.String())
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func (c *AnalysisClient) Get(ctx context.Context, id string) (server.AnalysisView, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/analyses/"+url.PathEscape(id), nil)
	if err != nil {
		return server.AnalysisView{}, err
	}
	var view server.AnalysisView
	err = c.do(request, &view)
	return view, err
}

func (c *AnalysisClient) Search(ctx context.Context, query, cursor string) (server.SearchResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	target := c.baseURL + "/api/v1/analyses"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return server.SearchResponse{}, err
	}
	var response server.SearchResponse
	err = c.do(request, &response)
	return response, err
}

// Export returns the suggested file name and the rendered content.
func (c *AnalysisClient) Export(ctx context.Context, id, format string) (string, []byte, error) {
	target := fmt.Sprintf("%s/api/v1/analyses/%s/export?format=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(format))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return "", nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", nil, decodeError(resp)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", nil, fmt.Errorf("content disposition: %w", err)
	}
	return params["filename"], content, nil
}

func (c *AnalysisClient) do(request *http.Request, out any) error {
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", request.URL.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body server.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return fmt.Errorf("server answered %s: %s", resp.Status, body.Error)
}
