// Package api is the HTTP client for the remote video service.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/session"
)

// Options configure a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration // per request, uploads excluded
	UploadTimeout     time.Duration
	RequestsPerSecond float64
	UserAgent         string
	Tokens            session.Holder
	Logger            zerolog.Logger
}

// Client talks to the video service. It implements dashboard.VideoService.
type Client struct {
	baseURL       string
	httpClient    *resty.Client
	tokens        session.Holder
	limiter       *rate.Limiter
	timeout       time.Duration
	uploadTimeout time.Duration
	log           zerolog.Logger
}

var _ dashboard.VideoService = (*Client)(nil)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type listResponse struct {
	Videos []dashboard.Video `json:"videos"`
}

type deleteRequest struct {
	Filename string `json:"filename"`
}

// RegisterRequest is the payload of a new account.
type RegisterRequest struct {
	Username string
	Password string
	FullName string
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "videodash"
	}

	c := &Client{
		baseURL:       baseURL,
		tokens:        opts.Tokens,
		timeout:       opts.Timeout,
		uploadTimeout: opts.UploadTimeout,
		log:           opts.Logger.With().Str("component", "api").Logger(),
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	c.httpClient = resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			c.log.Debug().
				Str("method", r.Request.Method).
				Str("url", r.Request.URL).
				Int("status", r.StatusCode()).
				Dur("elapsed", r.Time()).
				Msg("api request")
			return nil
		})

	return c
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := c.withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}

	var out loginResponse
	resp, err := req.
		SetBody(credentials{Username: username, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		return "", newAPIError(resp)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login response did not contain a token")
	}
	return out.Token, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	ctx, cancel := c.withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(credentials{Username: in.Username, Password: in.Password, FullName: in.FullName}).
		Post("/auth/register")
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func (c *Client) ListVideos(ctx context.Context) ([]dashboard.Video, error) {
	ctx, cancel := c.withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var out listResponse
	resp, err := req.SetResult(&out).Get("/video/list")
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return out.Videos, nil
}

// Upload posts file as the multipart field "file".
func (c *Client) Upload(ctx context.Context, file dashboard.UploadFile) error {
	ctx, cancel := c.withTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetMultipartField("file", file.Name, file.ContentType, file.Reader).
		Post("/video/upload")
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, filename string) error {
	ctx, cancel := c.withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(deleteRequest{Filename: filename}).
		Post("/video/delete")
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// StreamURL builds the playback URL. Media players cannot send headers, so
// the token travels in the query string.
func (c *Client) StreamURL(filename string) (string, error) {
	token, err := c.tokens.Get()
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("token", token)
	return fmt.Sprintf("%s/video/stream/%s?%s", c.baseURL, url.PathEscape(filename), q.Encode()), nil
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	return c.httpClient.R().SetContext(ctx), nil
}

func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	token, err := c.tokens.Get()
	if err != nil {
		return nil, err
	}
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	return req.SetAuthToken(token), nil
}

func (c *Client) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
