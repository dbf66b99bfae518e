package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"time"
)

// AnalyzerService forwards a meal photo to the external AI analysis webhook
// and hands back the raw JSON payload. It never retries; resubmission is the
// caller's affordance.
type AnalyzerService struct {
	webhookURL string
	client     *http.Client
}

func NewAnalyzerService() *AnalyzerService {
	return &AnalyzerService{
		webhookURL: os.Getenv("ANALYZER_WEBHOOK_URL"),
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

func quoteEscape(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}

// Analyze sends the image plus user id as multipart form data and returns the
// analyzer's JSON body untouched. Failures are typed: ErrAnalyzerTimeout,
// *UpstreamError for non-2xx, ErrMalformedResponse for 2xx non-JSON.
func (s *AnalyzerService) Analyze(ctx context.Context, image []byte, filename, contentType, userID string) (json.RawMessage, error) {
	if s.webhookURL == "" {
		return nil, errors.New("ANALYZER_WEBHOOK_URL not configured")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// CreateFormFile would hardcode application/octet-stream; the webhook
	// wants the real image content type.
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscape(filename)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if err := w.WriteField("userId", userID); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return nil, ErrAnalyzerTimeout
		}
		return nil, fmt.Errorf("failed to connect to analyzer webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyzer response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, ErrMalformedResponse
	}
	return json.RawMessage(body), nil
}
