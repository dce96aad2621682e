// Package auth talks to the login service. Requests carry the
// credentials as HTTP basic auth with an empty body, and the service
// answers {"authenticated": bool|null, "message": string}.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"pagetui/internal/errors"
	"pagetui/internal/log"

	"github.com/go-playground/validator/v10"
)

const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
)

// Credentials are the values typed into the login form.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=3"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks the credentials before any request is made.
func (c Credentials) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Struct(c); err != nil {
		return errors.NewAuthError("invalid credentials", "", errors.InvalidInput, err)
	}
	return nil
}

// Response is the service reply. Authenticated is nil when the service
// sends null.
type Response struct {
	Authenticated *bool  `json:"authenticated"`
	Message       string `json:"message"`
}

// OK reports an explicit true.
func (r Response) OK() bool {
	return r.Authenticated != nil && *r.Authenticated
}

// Err is nil for an accepted login and an AuthRejected error otherwise.
func (r Response) Err() error {
	if r.OK() {
		return nil
	}
	return errors.NewAuthError(r.Message, "", errors.AuthRejected, errors.ErrNotLoggedIn)
}

// Client posts credentials to the auth service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Response, error) {
	return c.post(ctx, LoginPath, creds)
}

func (c *Client) Register(ctx context.Context, creds Credentials) (Response, error) {
	return c.post(ctx, RegisterPath, creds)
}

func (c *Client) post(ctx context.Context, path string, creds Credentials) (Response, error) {
	endpoint := c.BaseURL + path
	logger := log.LogWithFields(log.F("endpoint", endpoint), log.F("user", creds.Email))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return Response{}, errors.NewAuthError("failed to build request", endpoint, errors.AuthTransport, err)
	}
	req.SetBasicAuth(creds.Email, creds.Password)

	logger.Debug("Sending auth request")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, errors.NewAuthError("auth request failed", endpoint, errors.AuthTransport, err)
	}
	defer res.Body.Close()

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Response{}, errors.NewAuthError("failed to decode auth response", endpoint, errors.AuthTransport, err).WithStatus(res.StatusCode)
	}
	logger.With(log.F("status", res.StatusCode), log.F("authenticated", out.OK())).Info("Auth response received")
	return out, nil
}
