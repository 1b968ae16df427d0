package gate

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Call classes. Public calls never attach the credential; protected calls
// attach whatever the store holds, unconditionally — attachment is not gated
// on local decodability, the platform API is the real authority.
const (
	callPublic    = false
	callProtected = true
)

// Client issues operations against the platform API. It owns the single
// global invalidation side effect: a protected call answered with the
// distinguished not-authorized status clears the credential store. It never
// redirects and never retries; navigation reacts to the cleared store.
type Client struct {
	baseURL      string
	http         *http.Client
	store        CredentialStore
	logger       Logger
	debug        bool
	rejectStatus int
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger overrides the default logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClientDebug enables request/response payload logging.
func WithClientDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

func NewClient(cfg Config, store CredentialStore, opts ...ClientOption) *Client {
	timeout := 15 * time.Second
	if cfg.GetRequestTimeout() > 0 {
		timeout = time.Duration(cfg.GetRequestTimeout()) * time.Second
	}

	rejectStatus := cfg.GetNotAuthorizedStatus()
	if rejectStatus == 0 {
		rejectStatus = http.StatusNotAcceptable
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.GetBaseURL(), "/"),
		http:         &http.Client{Timeout: timeout},
		store:        store,
		logger:       defLogger{},
		rejectStatus: rejectStatus,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Store exposes the credential store the client invalidates into.
func (c *Client) Store() CredentialStore {
	return c.store
}

type apiResponse struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

type apiFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type apiError struct {
	Message string          `json:"message"`
	Errors  []apiFieldError `json:"errors"`
}

func (c *Client) send(ctx context.Context, method, path string, payload any, protected bool) (*apiResponse, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to encode request payload")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if protected {
		if credential := c.store.Get(); credential != "" {
			req.Header.Set("Authorization", "Bearer "+credential)
		}
	}

	if c.debug {
		c.logger.Debug("%s %s %s", method, path, print.MaybePrettyJSON(payload))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "the request could not be completed").
			WithTextCode(TextCodeRequestFailed)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read response").
			WithTextCode(TextCodeRequestFailed)
	}

	if protected && resp.StatusCode == c.rejectStatus {
		// The one global side effect: the platform said this credential is
		// no good, so the next navigation must see an empty store.
		c.store.Clear()
		clone := ErrCredentialRejected.Clone()
		if clone == nil {
			return nil, ErrCredentialRejected
		}
		return nil, clone.WithMetadata(map[string]any{
			"status": resp.StatusCode,
			"path":   path,
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.errorFromResponse(resp.StatusCode, raw)
	}

	return &apiResponse{
		status:  resp.StatusCode,
		body:    raw,
		cookies: resp.Cookies(),
	}, nil
}

func (c *Client) call(ctx context.Context, method, path string, payload, out any, protected bool) error {
	resp, err := c.send(ctx, method, path, payload, protected)
	if err != nil {
		return err
	}

	if out == nil || len(resp.body) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to decode response payload")
	}

	return nil
}

// errorFromResponse maps a 4xx/5xx body onto the error taxonomy: a
// structured error list becomes per-field messages, anything else a single
// form-level message.
func (c *Client) errorFromResponse(status int, raw []byte) error {
	parsed := apiError{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = apiError{}
		}
	}

	if len(parsed.Errors) > 0 {
		fields := FieldErrors{}
		for _, fe := range parsed.Errors {
			fields[fe.Field] = fe.Message
		}
		return validationError(fields)
	}

	return requestError(parsed.Message, status)
}

func unmarshalBody(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to decode response payload")
	}
	return nil
}

// localValidationError converts an ozzo validation result into the same
// structured error shape the server produces, so forms render both
// identically.
func localValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if stderrors.As(err, &verrs) {
		fields := FieldErrors{}
		for field, ferr := range verrs {
			fields[field] = ferr.Error()
		}
		return validationError(fields)
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid form submission")
}
