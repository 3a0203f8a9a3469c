package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

const DefaultRequestTimeout = 30 * time.Second

type API struct {
	BaseURL           string
	SignUpPath        string
	SignInPath        string
	ProfilePath       string
	VerifyOTPPath     string
	UpdatePath        string
	DeleteAccountPath string
	NotificationsPath string
	RideHistoryPath   string
}

// DefaultAPI returns the driver endpoints relative to baseURL. baseURL should
// end with a slash so relative paths resolve beneath it.
func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:           baseURL,
		SignUpPath:        "driver/signup",
		SignInPath:        "driver/signin",
		ProfilePath:       "driver/profile",
		VerifyOTPPath:     "driver/verifyotp",
		UpdatePath:        "driver/update",
		DeleteAccountPath: "driver/deleteAccount",
		NotificationsPath: "driver/notifications",
		RideHistoryPath:   "driver/rides/history",
	}
}

type Adapter struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type call struct {
	op     string
	method string
	path   string
	token  string
	query  url.Values
	body   any
}

func (a Adapter) do(ctx context.Context, c call, out any) error {
	endpoint, err := buildAPIURL(a.API.BaseURL, c.path)
	if err != nil {
		return err
	}
	if len(c.query) > 0 {
		endpoint += "?" + c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		encoded, err := json.Marshal(c.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.op, err)
		}
		body = bytes.NewReader(encoded)
	}

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, c.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", c.op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := a.logger().With("action", c.op, "request_id", requestID)
	started := time.Now()

	resp, err := a.httpClient().Do(req)
	if err != nil {
		log.Debug("request failed", "error", err)
		return &domain.TransportError{Op: c.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug("response received", "status", resp.StatusCode, "duration", time.Since(started))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.TransportError{Op: c.op, Err: fmt.Errorf("read response: %w", err)}
	}

	return decodeEnvelope(c.op, resp.StatusCode, raw, out)
}

// decodeEnvelope maps a {success, data, message} body onto out. Non-2xx
// statuses and success=false are rejections; an unreadable 2xx body is a
// transport failure.
func decodeEnvelope(op string, status int, raw []byte, out any) error {
	ok := status >= http.StatusOK && status < http.StatusMultipleChoices

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if !ok {
			return &domain.RemoteError{Op: op, Status: status}
		}
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !ok || (env.Success != nil && !*env.Success) {
		return &domain.RemoteError{Op: op, Status: status, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response data: %w", err)}
	}
	return nil
}

func pageQuery(pageSize, page int) url.Values {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(pageSize))
	values.Set("page", strconv.Itoa(page))
	return values
}

func (a Adapter) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a Adapter) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a Adapter) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := a.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
