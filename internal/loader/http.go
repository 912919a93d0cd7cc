package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// HTTPLoader fetches includes named by an absolute URL over HTTP(S). A
// response is cached for the loader's lifetime, keyed by URL, and
// concurrent requests for the same URL are de-duplicated: only the first
// caller hits the network, and every other caller waiting on the same key
// receives its result.
type HTTPLoader struct {
	Client  *http.Client
	Timeout time.Duration

	mu       sync.Mutex
	cache    map[string][]byte
	errs     map[string]error
	inflight map[string]chan struct{}
}

// NewHTTPLoader returns an HTTPLoader using client (or http.DefaultClient
// if nil) with the given per-request timeout.
func NewHTTPLoader(client *http.Client, timeout time.Duration) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{
		Client:   client,
		Timeout:  timeout,
		cache:    make(map[string][]byte),
		errs:     make(map[string]error),
		inflight: make(map[string]chan struct{}),
	}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) ([]byte, error) {
	l.mu.Lock()
	if data, ok := l.cache[url]; ok {
		l.mu.Unlock()
		return data, nil
	}
	if err, ok := l.errs[url]; ok {
		l.mu.Unlock()
		return nil, err
	}
	if wait, ok := l.inflight[url]; ok {
		l.mu.Unlock()
		select {
		case <-wait:
			return l.Load(ctx, url)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	done := make(chan struct{})
	l.inflight[url] = done
	l.mu.Unlock()

	data, err := l.fetch(ctx, url)

	l.mu.Lock()
	if err != nil {
		l.errs[url] = err
	} else {
		l.cache[url] = data
	}
	delete(l.inflight, url)
	close(done)
	l.mu.Unlock()

	return data, err
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: building request for %s: %w", url, err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: fetching %s: status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("loader: reading body of %s: %w", url, err)
	}
	return data, nil
}
