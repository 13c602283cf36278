package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultConnectTimeout bounds establishing the connection.
	DefaultConnectTimeout = 30 * time.Second
	// DefaultMaxTime bounds the whole download.
	DefaultMaxTime = 300 * time.Second
	// maxErrorBody caps how much of an error response body is reported.
	maxErrorBody = 4096
)

// Options configures a Fetcher.
type Options struct {
	ConnectTimeout time.Duration
	MaxTime        time.Duration
	// UserAgent is sent with every request, e.g. "pose/1.2.3".
	UserAgent string
	Logger    logrus.FieldLogger
	// Transport overrides the HTTP transport. Nil builds one honoring ConnectTimeout.
	Transport http.RoundTripper
}

// Request describes one download.
type Request struct {
	URL string
	// Output is the destination file. Empty uses the base name of the URL path.
	Output string
	// Script rewrites an invalid URL, or a URL answering 404. Nil disables rewriting.
	Script *Script
	// Dir is the directory relative output paths resolve against. Empty is the working directory.
	Dir string
}

// Fetcher downloads files over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    logrus.FieldLogger
}

// NewFetcher creates a fetcher.
func NewFetcher(opts Options) *Fetcher {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}

	if opts.MaxTime <= 0 {
		opts.MaxTime = DefaultMaxTime
	}

	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	transport := opts.Transport
	if transport == nil {
		base, _ := http.DefaultTransport.(*http.Transport)
		cloned := base.Clone()
		cloned.DialContext = (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext
		transport = cloned
	}

	return &Fetcher{
		client:    &http.Client{Timeout: opts.MaxTime, Transport: transport},
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
}

// Get downloads req.URL and returns the path of the written file.
func (f *Fetcher) Get(ctx context.Context, req Request) (string, error) {
	target, err := f.parseURL(req)
	if err != nil {
		return "", err
	}

	if (target.Path == "" || target.Path == "/") && req.Output == "" {
		return "", newError(exitMissingFilename, ErrMissingFilename)
	}

	resp, err := f.download(ctx, target.String())
	if err != nil {
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound || req.Script == nil {
			return "", err
		}

		rewritten, rewriteErr := req.Script.Apply(target.String())
		if rewriteErr != nil {
			return "", err
		}

		f.logger.Debugf("%s not found, retrying with %s", target, rewritten)

		target, rewriteErr = parseAbsoluteURL(rewritten)
		if rewriteErr != nil {
			return "", newError(exitInvalidURL, rewriteErr)
		}

		resp, err = f.download(ctx, target.String())
		if err != nil {
			return "", err
		}
	}

	defer func() { _ = resp.Body.Close() }()

	return save(resp.Body, outputPath(req, target))
}

func (f *Fetcher) parseURL(req Request) (*url.URL, error) {
	target, err := parseAbsoluteURL(req.URL)
	if err == nil {
		return target, nil
	}

	if req.Script == nil {
		return nil, newError(exitInvalidURL, err)
	}

	rewritten, rewriteErr := req.Script.Apply(req.URL)
	if rewriteErr != nil {
		return nil, newError(exitInvalidURL, fmt.Errorf("%w and replace script: %w", err, rewriteErr))
	}

	target, err = parseAbsoluteURL(rewritten)
	if err != nil {
		return nil, newError(exitInvalidURL, fmt.Errorf("invalid URL and replace script: %w", err))
	}

	return target, nil
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w - %w", ErrInvalidURL, err)
	}

	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("%w - %q is not absolute", ErrInvalidURL, raw)
	}

	return target, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (*http.Response, error) {
	f.logger.Debugf("GET %s", rawURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newError(exitInvalidURL, fmt.Errorf("%w - %w", ErrInvalidURL, err))
	}

	if f.userAgent != "" {
		httpReq.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, newError(exitRequest, fmt.Errorf("%w: %w", ErrRequest, err))
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	return nil, newError(exitStatus, &StatusError{
		URL:        rawURL,
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	})
}

func outputPath(req Request, target *url.URL) string {
	name := req.Output
	if name == "" {
		name = path.Base(target.Path)
	}

	if filepath.IsAbs(name) || req.Dir == "" {
		return name
	}

	return filepath.Join(req.Dir, name)
}

func save(body io.Reader, name string) (string, error) {
	file, err := os.Create(filepath.Clean(name))
	if err != nil {
		return "", newError(exitCreateFile, fmt.Errorf("%w '%s' - %w", ErrCreateFile, name, err))
	}

	_, copyErr := io.Copy(file, body)
	closeErr := file.Close()

	if copyErr == nil {
		copyErr = closeErr
	}

	if copyErr != nil {
		return "", newError(exitWriteFile, fmt.Errorf("%w '%s': %w", ErrWriteFile, name, copyErr))
	}

	return name, nil
}
