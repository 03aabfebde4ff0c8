package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const DefaultFetchTimeout = 10 * time.Second

var ErrNoSource = errors.New("catalog: no source registered")

// Source returns an untyped response body for one catalog.
type Source interface {
	Fetch(ctx context.Context) (any, error)
}

type SourceFunc func(ctx context.Context) (any, error)

func (f SourceFunc) Fetch(ctx context.Context) (any, error) { return f(ctx) }

// HTTPSource reads a JSON catalog from a remote endpoint.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Header http.Header
}

func (s HTTPSource) Fetch(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vals := range s.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// A body we cannot decode is a shape problem, not a transport one.
		return nil, nil
	}
	return body, nil
}

// AsBody converts typed rows (e.g. database models) into the untyped shape
// the normalizer expects.
func AsBody(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// Loader fetches and normalizes catalogs with a per-request timeout.
type Loader struct {
	mu      sync.RWMutex
	sources map[Kind]Source
	timeout time.Duration
}

func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{sources: map[Kind]Source{}, timeout: timeout}
}

func (l *Loader) Register(kind Kind, src Source) *Loader {
	l.mu.Lock()
	l.sources[kind] = src
	l.mu.Unlock()
	return l
}

func (l *Loader) source(kind Kind) (Source, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src, ok := l.sources[kind]
	return src, ok
}

// Load fetches one catalog. Only transport failures are returned as errors;
// malformed bodies come back as an empty list.
func (l *Loader) Load(ctx context.Context, kind Kind) ([]Product, error) {
	src, ok := l.source(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, kind)
	}
	return l.Fetch(ctx, kind, src)
}

// Fetch reads src under the loader's timeout and normalizes it as kind.
func (l *Loader) Fetch(ctx context.Context, kind Kind, src Source) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", kind, err)
	}
	return Normalize(body, kind), nil
}

// Snapshot holds both catalogs. A failed kind keeps a nil list and its error.
type Snapshot struct {
	VPS       []Product
	Dedicated []Product
	Errors    map[Kind]error
}

func (s Snapshot) Products(kind Kind) []Product {
	if kind == KindVPS {
		return s.VPS
	}
	return s.Dedicated
}

func (s Snapshot) Failed() bool {
	return len(s.Errors) == 2
}

// LoadAll fetches the VPS and dedicated catalogs concurrently. One failing
// does not discard the other.
func (l *Loader) LoadAll(ctx context.Context) Snapshot {
	kinds := []Kind{KindVPS, KindDedicated}
	results := make([][]Product, len(kinds))
	errs := make([]error, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind Kind) {
			defer wg.Done()
			results[i], errs[i] = l.Load(ctx, kind)
		}(i, kind)
	}
	wg.Wait()

	snap := Snapshot{Errors: map[Kind]error{}}
	for i, kind := range kinds {
		if errs[i] != nil {
			snap.Errors[kind] = errs[i]
			continue
		}
		if kind == KindVPS {
			snap.VPS = results[i]
		} else {
			snap.Dedicated = results[i]
		}
	}
	return snap
}
