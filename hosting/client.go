package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/site"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"
)

const (
	opUpload = "upload"
	opDeploy = "deploy"
	opAlias  = "alias"

	headerDigest = "x-now-digest"
	headerSize   = "x-now-size"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
)

var _ Deployer = (*Client)(nil)

// Client talks to the hosting API. It holds no per-user state: the caller's
// access token is passed to every call.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	requestDuration *prometheus.HistogramVec
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCallTimeout bounds each remote call. Expiry fails the call.
func WithCallTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterMetrics registers the request duration histogram with registry.
// Returns the client for chaining.
func (c *Client) RegisterMetrics(registry prometheus.Registerer) *Client {
	c.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearme",
		Subsystem: "hosting",
		Name:      "request_duration_seconds",
		Help:      "Duration of hosting API calls by operation and response status",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	registry.MustRegister(c.requestDuration)
	return c
}

// Upload sends the artifact bytes to the content-addressed file store.
func (c *Client) Upload(ctx context.Context, accessToken string, artifact site.Artifact) (FileRef, error) {
	if !artifact.Verify() {
		return FileRef{}, &UploadError{Detail: "artifact digest does not match its content", Err: errors.ErrDigestMismatch}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", bytes.NewReader(artifact.Content))
	if err != nil {
		return FileRef{}, &UploadError{Detail: err.Error(), Err: err}
	}
	req.ContentLength = int64(artifact.Size)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(headerDigest, artifact.Digest)
	req.Header.Set(headerSize, strconv.Itoa(artifact.Size))

	resp, err := c.do(req, opUpload, accessToken)
	if err != nil {
		return FileRef{}, &UploadError{Detail: err.Error(), Err: err}
	}
	if resp.status != http.StatusOK {
		return FileRef{}, &UploadError{StatusCode: resp.status, Detail: string(resp.body)}
	}
	if echoed := echoedDigest(resp); echoed != "" && !strings.EqualFold(echoed, artifact.Digest) {
		return FileRef{}, &UploadError{
			StatusCode: resp.status,
			Detail:     fmt.Sprintf("backend reported digest %s, expected %s", echoed, artifact.Digest),
			Err:        errors.ErrDigestMismatch,
		}
	}

	return FileRef{File: artifact.Name, Size: artifact.Size, SHA: artifact.Digest}, nil
}

// CreateDeployment creates a static deployment named name from uploaded files.
func (c *Client) CreateDeployment(ctx context.Context, accessToken, name string, files []FileRef) (Deployment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := newJSONRequest(ctx, c.baseURL+"/deployments", deploymentRequest{
		Name:           name,
		Files:          files,
		DeploymentType: deploymentTypeStatic,
	})
	if err != nil {
		return Deployment{}, &DeployError{Detail: err.Error(), Err: err}
	}

	resp, err := c.do(req, opDeploy, accessToken)
	if err != nil {
		return Deployment{}, &DeployError{Detail: err.Error(), Err: err}
	}
	if resp.status != http.StatusOK {
		return Deployment{}, &DeployError{StatusCode: resp.status, Detail: string(resp.body)}
	}

	var dr deploymentResponse
	if err := json.Unmarshal(resp.body, &dr); err != nil {
		return Deployment{}, &DeployError{StatusCode: resp.status, Detail: string(resp.body), Err: err}
	}
	if dr.DeploymentID == "" || dr.URL == "" {
		return Deployment{}, &DeployError{StatusCode: resp.status, Detail: string(resp.body)}
	}
	return Deployment{ID: dr.DeploymentID, URL: dr.URL}, nil
}

// CreateAlias binds alias to an existing deployment.
func (c *Client) CreateAlias(ctx context.Context, accessToken, deploymentID, alias string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/deployments/" + url.PathEscape(deploymentID) + "/aliases"
	req, err := newJSONRequest(ctx, endpoint, aliasRequest{Alias: alias})
	if err != nil {
		return &AliasError{Alias: alias, Detail: err.Error(), Err: err}
	}

	resp, err := c.do(req, opAlias, accessToken)
	if err != nil {
		return &AliasError{Alias: alias, Detail: err.Error(), Err: err}
	}
	if resp.status != http.StatusOK {
		return &AliasError{Alias: alias, StatusCode: resp.status, Detail: string(resp.body)}
	}
	return nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(req *http.Request, op, accessToken string) (*response, error) {
	start := time.Now()
	resp, err := c.authorised(req.Context(), accessToken).Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return nil, fmt.Errorf("[hosting %s] request failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.observe(op, strconv.Itoa(resp.StatusCode), start)
	if err != nil {
		return nil, fmt.Errorf("[hosting %s] read response: %w", op, err)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// authorised returns an HTTP client that attaches accessToken as a bearer
// credential on top of the configured transport.
func (c *Client) authorised(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.requestDuration == nil {
		return
	}
	c.requestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

func newJSONRequest(ctx context.Context, endpoint string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// echoedDigest returns the digest the backend reports for an upload, if any.
func echoedDigest(resp *response) string {
	if d := resp.header.Get(headerDigest); d != "" {
		return d
	}
	var ur uploadResponse
	if err := json.Unmarshal(resp.body, &ur); err != nil {
		return ""
	}
	return ur.Digest
}
