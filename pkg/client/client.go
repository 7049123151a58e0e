package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
)

const (
	DefaultVersion = "v1"

	defaultHeaderTimeout = 30 * time.Second
	maxErrorBody         = 4 * 1024
)

// Options describes how to reach and authenticate against an SDTP server.
type Options struct {
	Server  string
	Version string

	// CertPath may hold the certificate and the key in one PEM file, in which
	// case KeyPath is left empty.
	CertPath string
	KeyPath  string
	// CAPath adds a CA bundle to the system roots. Empty uses the system roots only.
	CAPath string

	InsecureSkipVerify bool
	MinTLSVersion      uint16
	// Timeout bounds connection setup and waiting for response headers. Bodies
	// stream for as long as the caller's context allows.
	Timeout time.Duration
}

// SDTPClient talks to the catalog endpoints of an SDTP server.
type SDTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewSDTPClient(opts Options, log *logger.Logger) (*SDTPClient, error) {
	if opts.Server == "" {
		return nil, _errors.ErrMissingServer
	}

	tlsConfig, err := loadTLSConfig(opts)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHeaderTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return NewWithHTTPClient(BaseURL(opts.Server, opts.Version), &http.Client{Transport: transport}, log), nil
}

// NewWithHTTPClient builds a client on a preconfigured http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *logger.Logger) *SDTPClient {
	return &SDTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log.WithField("component", "sdtp-client"),
	}
}

// BaseURL returns https://{server}/sdtp/{version}.
func BaseURL(server, version string) string {
	if version == "" {
		version = DefaultVersion
	}
	return fmt.Sprintf("https://%s/sdtp/%s", server, version)
}

func loadTLSConfig(opts Options) (*tls.Config, error) {
	minVersion := opts.MinTLSVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	tlsConfig := &tls.Config{
		MinVersion: minVersion,
		// #nosec G402 -- opt-in for servers with self-signed certificates
		InsecureSkipVerify: opts.InsecureSkipVerify,
	}

	if opts.CertPath != "" {
		keyPath := opts.KeyPath
		if keyPath == "" {
			keyPath = opts.CertPath
		}
		clientCert, err := tls.LoadX509KeyPair(opts.CertPath, keyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert/key: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{clientCert}
	}

	if opts.CAPath != "" {
		caCert, err := os.ReadFile(opts.CAPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		certPool, err := x509.SystemCertPool()
		if err != nil || certPool == nil {
			certPool = x509.NewCertPool()
		}
		if ok := certPool.AppendCertsFromPEM(caCert); !ok {
			return nil, fmt.Errorf("failed to add CA certificate to pool")
		}
		tlsConfig.RootCAs = certPool
	}

	return tlsConfig, nil
}

func (c *SDTPClient) BaseURL() string {
	return c.baseURL
}

// ListFiles returns one page of the catalog.
func (c *SDTPClient) ListFiles(ctx context.Context, opts domain.ListOptions) ([]domain.FileDescriptor, error) {
	query := url.Values{}
	if opts.MaxFiles != nil {
		query.Set("max_file", strconv.Itoa(*opts.MaxFiles))
	}
	if opts.StartFileID != nil {
		query.Set("start_file_id", strconv.FormatInt(*opts.StartFileID, 10))
	}
	lo.ForEach(lo.Keys(opts.Tags), func(key string, _ int) {
		query.Set(fmt.Sprintf("tags[%s]", key), opts.Tags[key])
	})

	endpoint := c.baseURL + "/files"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, "list files")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list domain.FileList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, _errors.NewTransportError("list files", endpoint, 0, fmt.Errorf("decode response: %w", err))
	}

	// a malformed entry fails only its own transfer
	for _, file := range list.Files {
		if err := file.Validate(); err != nil {
			c.logger.Warn("catalog entry is malformed", "file_id", file.ID, "error", err)
		}
	}

	c.logger.Debug("listed files", "count", len(list.Files))
	return list.Files, nil
}

// ListAll pages through the catalog, starting each page after the last id
// seen, until a page comes back short.
func (c *SDTPClient) ListAll(ctx context.Context, pageSize int, tags map[string]string) ([]domain.FileDescriptor, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}

	var (
		all   []domain.FileDescriptor
		start *int64
	)
	for {
		page, err := c.ListFiles(ctx, domain.ListOptions{
			MaxFiles:    lo.ToPtr(pageSize),
			StartFileID: start,
			Tags:        tags,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}

		last := lo.MaxBy(page, func(a, b domain.FileDescriptor) bool { return a.ID > b.ID }).ID
		if start != nil && last+1 <= *start {
			return nil, fmt.Errorf("catalog paging did not advance past file id %d", last)
		}
		start = lo.ToPtr(last + 1)
	}
}

// OpenFile starts streaming the content of a file. A non-2xx status fails
// before any of the body is handed out. The caller closes the body.
func (c *SDTPClient) OpenFile(ctx context.Context, fileID int64) (io.ReadCloser, error) {
	endpoint := fmt.Sprintf("%s/files/%d", c.baseURL, fileID)
	resp, err := c.do(ctx, http.MethodGet, endpoint, "get file")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *SDTPClient) DeleteFile(ctx context.Context, fileID int64) error {
	endpoint := fmt.Sprintf("%s/files/%d", c.baseURL, fileID)
	return c.discard(ctx, http.MethodDelete, endpoint, "delete file")
}

// DeleteFileRange deletes every file with an id between from and to inclusive.
func (c *SDTPClient) DeleteFileRange(ctx context.Context, from, to int64) error {
	if from < 0 || from > to {
		return fmt.Errorf("%d-%d: %w", from, to, _errors.ErrInvalidRange)
	}
	endpoint := fmt.Sprintf("%s/files/%d-%d", c.baseURL, from, to)
	return c.discard(ctx, http.MethodDelete, endpoint, "delete file range")
}

// Register announces this client to the server.
func (c *SDTPClient) Register(ctx context.Context) error {
	return c.discard(ctx, http.MethodPut, c.baseURL+"/register", "register")
}

func (c *SDTPClient) discard(ctx context.Context, method, endpoint, op string) error {
	resp, err := c.do(ctx, method, endpoint, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends a request and turns transport failures and non-2xx answers into
// TransportErrors. On success the caller owns resp.Body.
func (c *SDTPClient) do(ctx context.Context, method, endpoint, op string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, _errors.NewTransportError(op, endpoint, 0, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, _errors.NewTransportError(op, endpoint, 0, err)
	}

	c.logger.Debug("request completed", "method", method, "url", endpoint,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if len(body) > 0 {
			cause = errors.New(strings.TrimSpace(string(body)))
		}
		return nil, _errors.NewTransportError(op, endpoint, resp.StatusCode, cause)
	}

	return resp, nil
}

// Close releases idle connections held by the client.
func (c *SDTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
