// Package vercel is a minimal client for the parts of the Vercel REST API the
// deploy workflow needs: projects, project domains and domain status.
package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"vercel-deploy/internal/logger"
)

// DefaultBaseURL is the public Vercel API.
const DefaultBaseURL = "https://api.vercel.com"

// DefaultTimeout bounds every API call.
const DefaultTimeout = 60 * time.Second

// Success codes per call. Writes may answer 201; the status read only 200.
var (
	okOrCreated = []int{http.StatusOK, http.StatusCreated}
	okOnly      = []int{http.StatusOK}
)

// APIError is a non-success response, carrying status and body verbatim.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, strings.TrimSpace(e.Body))
}

// Client talks to the Vercel API on behalf of one team.
type Client struct {
	baseURL string
	token   string
	teamID  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout replaces the default client with one using the given timeout.
// Non-positive values keep DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http = newHTTPClient(timeout)
		}
	}
}

// NewClient builds a Client authenticated with token and scoped to teamID.
func NewClient(token, teamID string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		teamID:  teamID,
		http:    newHTTPClient(DefaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			ForceAttemptHTTP2:   true,
			TLSHandshakeTimeout: 10 * time.Second,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// ListProjects returns the team's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out projectsResponse
	if err := c.do(ctx, http.MethodGet, "/v9/projects", okOrCreated, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// CreateProject creates a project with the given framework preset.
func (c *Client) CreateProject(ctx context.Context, name, framework string) (Project, error) {
	var out Project
	req := createProjectRequest{Name: name, Framework: framework}
	if err := c.do(ctx, http.MethodPost, "/v9/projects", okOrCreated, req, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// ListProjectDomains returns the domains bound to a project.
func (c *Client) ListProjectDomains(ctx context.Context, projectID string) ([]Domain, error) {
	var out domainsResponse
	path := "/v9/projects/" + url.PathEscape(projectID) + "/domains"
	if err := c.do(ctx, http.MethodGet, path, okOrCreated, nil, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// AddProjectDomain binds a domain to a project.
func (c *Client) AddProjectDomain(ctx context.Context, projectID, name string) (Domain, error) {
	var out Domain
	path := "/v9/projects/" + url.PathEscape(projectID) + "/domains"
	if err := c.do(ctx, http.MethodPost, path, okOrCreated, addDomainRequest{Name: name}, &out); err != nil {
		return Domain{}, err
	}
	return out, nil
}

// DomainStatus reads the configuration status of a domain.
func (c *Client) DomainStatus(ctx context.Context, domain string) (DomainStatus, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v10/domains/"+url.PathEscape(domain), okOnly, nil, &raw); err != nil {
		return DomainStatus{}, err
	}
	return decodeStatus(raw)
}

func decodeStatus(raw json.RawMessage) (DomainStatus, error) {
	var wrapped struct {
		Domain *DomainStatus `json:"domain"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Domain != nil {
		return *wrapped.Domain, nil
	}
	var flat DomainStatus
	if err := json.Unmarshal(raw, &flat); err != nil {
		return DomainStatus{}, fmt.Errorf("failed to decode domain status: %w", err)
	}
	return flat, nil
}

// do sends one team-scoped request. Any status outside success becomes an
// *APIError; otherwise the JSON body is decoded into out.
func (c *Client) do(ctx context.Context, method, path string, success []int, body, out any) error {
	endpoint := c.baseURL + path + "?teamId=" + url.QueryEscape(c.teamID)

	// Encode the request body, if any
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	// Authenticate with the bearer token
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debug("[DEBUG] %s %s\n", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("⚠️  failed to close response body: %v\n", cerr)
		}
	}()

	// Read the whole body so errors can carry it verbatim
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if !slices.Contains(success, resp.StatusCode) {
		return &APIError{Method: method, URL: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
