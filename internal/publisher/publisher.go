package publisher

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
)

// ErrNoEndpoint is returned when no publish URL is configured.
var ErrNoEndpoint = errors.New("no publish URL configured")

// Receipt is the endpoint's answer to a successful upload.
type Receipt struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Checksum string `json:"-"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("publish endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("publish endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Publisher uploads archives.
type Publisher struct {
	url        string
	token      string
	version    string
	httpClient *http.Client
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(p *Publisher) {
		p.httpClient = c
	}
}

// WithVersion sets the client version sent in the User-Agent.
func WithVersion(v string) Option {
	return func(p *Publisher) {
		p.version = v
	}
}

// New creates a Publisher for url, authenticating with token when set.
func New(url, token string, opts ...Option) *Publisher {
	p := &Publisher{
		url:        url,
		token:      token,
		version:    "dev",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish uploads the archive at path as the "file" form field, together with
// its SHA-256 checksum.
func (p *Publisher) Publish(ctx context.Context, path string) (*Receipt, error) {
	if p.url == "" {
		return nil, ErrNoEndpoint
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("checksum", checksum); err != nil {
		return nil, err
	}
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName()+"/"+p.version)
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading archive: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	receipt := &Receipt{Checksum: checksum}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, receipt); err != nil {
			return nil, fmt.Errorf("parsing publish response: %w", err)
		}
	}
	return receipt, nil
}
