package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
)

// RemoteClient talks to the server-side extraction endpoint: multipart
// upload, JSON dataset envelope back. One attempt, no retries.
type RemoteClient struct {
	endpoint string
	client   *http.Client
}

func NewRemoteClient(endpoint string) *RemoteClient {
	return &RemoteClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (c *RemoteClient) Extract(ctx context.Context, src Source, format Format) (api.ExtractedData, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", src.Name)
	if err != nil {
		return api.ExtractedData{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, src.Reader); err != nil {
		return api.ExtractedData{}, fmt.Errorf("copy file into request: %w", err)
	}
	if err := writer.WriteField("format", string(format)); err != nil {
		return api.ExtractedData{}, fmt.Errorf("write format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return api.ExtractedData{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return api.ExtractedData{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return api.ExtractedData{}, &ExtractionError{Status: "unreachable", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.Error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return api.ExtractedData{}, &ExtractionError{Status: resp.Status, Message: apiErr.Error}
	}

	var data api.ExtractedData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return api.ExtractedData{}, &ExtractionError{Status: resp.Status, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return data, nil
}
