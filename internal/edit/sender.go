package edit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is where the modeling backend listens by default.
const DefaultBaseURL = "http://localhost:5458"

// ErrRejected is returned when the backend answers but refuses the operation.
var ErrRejected = errors.New("edit rejected")

// Response is the backend answer.
type Response struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
}

// Sender delivers edit intents.
type Sender interface {
	Send(ctx context.Context, in Intent) (*Response, error)
}

// HTTPSender POSTs intents as JSON to <BaseURL>/ToolsFrameworksConverterEngine/<Op>.
type HTTPSender struct {
	BaseURL string
	Client  *http.Client
	Log     *slog.Logger
}

// NewHTTPSender returns a sender with a bounded client timeout.
func NewHTTPSender(baseURL string, log *slog.Logger) *HTTPSender {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &HTTPSender{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
		Log:     log,
	}
}

// Send validates and posts one intent. There is no retry.
func (s *HTTPSender) Send(ctx context.Context, in Intent) (*Response, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(in.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", in.Op, err)
	}

	url := s.BaseURL + "/ToolsFrameworksConverterEngine/" + string(in.Op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", in.Op, err)
	}
	reqID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := s.Log.With("op", string(in.Op), "request_id", reqID)
	resp, err := s.Client.Do(req)
	if err != nil {
		log.Warn("edit intent failed", "error", err)
		return nil, fmt.Errorf("call backend for %s: %w", in.Op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", in.Op, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn("edit intent failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s failed: %d", ErrRejected, in.Op, resp.StatusCode)
	}

	// A missing Success field counts as success.
	var wire struct {
		Success *bool  `json:"Success"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", in.Op, err)
	}
	out := &Response{Success: wire.Success == nil || *wire.Success, Message: wire.Message}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Unknown error"
		}
		log.Warn("edit intent rejected", "message", msg)
		return out, fmt.Errorf("%w: %s failed: %s", ErrRejected, in.Op, msg)
	}
	log.Info("edit intent completed")
	return out, nil
}
