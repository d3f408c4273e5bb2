package inkpot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadClient posts files to an external upload endpoint that accepts a
// multipart file and answers {"url": "..."}. It is the fallback path for
// post images; the preferred path is a locally-computed data URI, which
// stays portable across deployment environments.
type UploadClient struct {
	Endpoint string
	HTTP     *http.Client
}

func NewUploadClient(endpoint string) *UploadClient {
	return &UploadClient{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the file and returns the hosted URL. A non-2xx response
// is an error; nothing is retried.
func (u *UploadClient) Upload(name string, data io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("inkpot: build upload request: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("inkpot: build upload request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("inkpot: build upload request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, u.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("inkpot: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("inkpot: upload failed with status %d", resp.StatusCode)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("inkpot: decode upload response: %w", err)
	}
	return out.URL, nil
}
