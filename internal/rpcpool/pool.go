// Package rpcpool implements a tiered multi-endpoint JSON-RPC call layer.
// Every read the scanner makes goes through one Pool: endpoints are tried in
// health order with a hard cap of two attempts per call, successful responses
// are cached write-once for the lifetime of the scan, and remote failures are
// reported as values rather than errors so callers can degrade per category.
package rpcpool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"tokenscan/internal/chaincfg"
	"tokenscan/internal/observability"
)

// maxAttemptsPerCall bounds how many endpoints one logical call may touch.
// A scan issues dozens of calls; two attempts keeps worst-case latency flat.
const maxAttemptsPerCall = 2

// supportedMethods is the closed set of JSON-RPC methods the pool will issue.
// Everything the scanner needs is a read; anything else is a programmer error.
var supportedMethods = map[string]struct{}{
	"eth_getCode":      {},
	"eth_call":         {},
	"eth_getStorageAt": {},
	"eth_blockNumber":  {},
	"eth_getLogs":      {},
}

// CallResult is the outcome of one pooled call. Remote failures set
// Success=false and Err; they are never surfaced as Go errors.
type CallResult struct {
	Data     json.RawMessage
	Success  bool
	Err      string
	Endpoint string
	Attempts int
	Elapsed  time.Duration
	Cached   bool
}

// Caller is the read interface analyzers depend on.
type Caller interface {
	Call(ctx context.Context, method string, params []interface{}, cacheKey string) (CallResult, error)
}

// Stats is an aggregate snapshot of pool activity.
type Stats struct {
	TotalCalls int64
	Successful int64
	Failed     int64
	CacheHits  int64
	// AvgLatency averages successful calls only; failures would skew it
	// toward timeout values.
	AvgLatency time.Duration
}

// EndpointStats is the per-endpoint slice of DetailedStats.
type EndpointStats struct {
	Label               string
	URL                 string
	Tier                int
	ConsecutiveFailures int
}

// DetailedStats extends Stats with per-endpoint health and cache occupancy.
type DetailedStats struct {
	Stats
	Endpoints []EndpointStats
	CacheSize int
}

type endpointState struct {
	cfg                 chaincfg.Endpoint
	client              *http.Client
	index               int
	consecutiveFailures int
}

// Pool is a tiered endpoint pool for one chain. Safe for concurrent use.
type Pool struct {
	chain     string
	log       logrus.FieldLogger
	requestID atomic.Uint64

	mu         sync.Mutex
	endpoints  []*endpointState
	cache      map[string]json.RawMessage
	totalCalls int64
	successful int64
	failed     int64
	cacheHits  int64
	latencySum time.Duration
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the structured logger used for call traces.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pool) {
		p.log = log
	}
}

// New creates a pool over the chain's configured endpoints. Endpoint order
// in the slice is the tiebreak when tier and health are equal.
func New(chain string, endpoints []chaincfg.Endpoint, opts ...Option) *Pool {
	p := &Pool{
		chain: chain,
		log:   logrus.StandardLogger(),
		cache: make(map[string]json.RawMessage),
	}
	for i, ep := range endpoints {
		p.endpoints = append(p.endpoints, &endpointState{
			cfg:    ep,
			client: &http.Client{Timeout: ep.Timeout},
			index:  i,
		})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Call issues one JSON-RPC read. A non-empty cacheKey makes the call
// cacheable: a hit is served locally with Attempts=0 and no endpoint touched.
// The returned error is non-nil only for local mistakes (unknown method,
// unmarshalable params); every remote failure comes back inside CallResult.
func (p *Pool) Call(ctx context.Context, method string, params []interface{}, cacheKey string) (CallResult, error) {
	if _, ok := supportedMethods[method]; !ok {
		return CallResult{}, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if cacheKey != "" {
		p.mu.Lock()
		if data, ok := p.cache[cacheKey]; ok {
			p.cacheHits++
			p.mu.Unlock()
			observability.RecordCacheHit()
			return CallResult{Data: data, Success: true, Attempts: 0, Cached: true}, nil
		}
		p.mu.Unlock()
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      p.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return CallResult{}, fmt.Errorf("marshal request: %w", err)
	}

	ordered := p.ordered()
	limit := maxAttemptsPerCall
	if len(ordered) < limit {
		limit = len(ordered)
	}

	var lastErr string
	for attempt := 0; attempt < limit; attempt++ {
		ep := ordered[attempt]
		start := time.Now()
		data, callErr := p.doRequest(ctx, ep, body)
		elapsed := time.Since(start)

		if callErr != nil {
			lastErr = callErr.Error()
			p.recordFailure(ep)
			observability.RecordRPCCall(method, ep.cfg.Label, "error", elapsed.Seconds())
			p.log.WithFields(logrus.Fields{
				"chain":    p.chain,
				"endpoint": ep.cfg.Label,
				"method":   method,
				"attempt":  attempt + 1,
				"elapsed":  elapsed,
			}).Warnf("rpc call failed: %v", callErr)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		p.recordSuccess(ep, elapsed)
		observability.RecordRPCCall(method, ep.cfg.Label, "ok", elapsed.Seconds())
		p.log.WithFields(logrus.Fields{
			"chain":    p.chain,
			"endpoint": ep.cfg.Label,
			"method":   method,
			"attempt":  attempt + 1,
			"elapsed":  elapsed,
		}).Debug("rpc call ok")

		if cacheKey != "" {
			p.storeCache(cacheKey, data)
		}
		return CallResult{
			Data:     data,
			Success:  true,
			Endpoint: ep.cfg.Label,
			Attempts: attempt + 1,
			Elapsed:  elapsed,
		}, nil
	}

	if lastErr == "" {
		lastErr = "no endpoints available"
	}
	p.mu.Lock()
	p.totalCalls++
	p.failed++
	p.mu.Unlock()
	return CallResult{Success: false, Err: lastErr, Attempts: limit}, nil
}

// doRequest performs one HTTP round trip against a single endpoint using that
// endpoint's timeout.
func (p *Pool) doRequest(ctx context.Context, ep *endpointState, body []byte) (json.RawMessage, error) {
	callCtx, cancel := context.WithTimeout(ctx, ep.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, ep.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ep.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

// ordered snapshots the endpoints sorted by tier, then consecutive failures,
// then original configuration order.
func (p *Pool) ordered() []*endpointState {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*endpointState, len(p.endpoints))
	copy(out, p.endpoints)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].cfg.Tier != out[j].cfg.Tier {
			return out[i].cfg.Tier < out[j].cfg.Tier
		}
		if out[i].consecutiveFailures != out[j].consecutiveFailures {
			return out[i].consecutiveFailures < out[j].consecutiveFailures
		}
		return out[i].index < out[j].index
	})
	return out
}

func (p *Pool) recordSuccess(ep *endpointState, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ep.consecutiveFailures = 0
	p.totalCalls++
	p.successful++
	p.latencySum += elapsed
}

func (p *Pool) recordFailure(ep *endpointState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ep.consecutiveFailures++
}

// storeCache inserts write-once: a key already present is never overwritten.
func (p *Pool) storeCache(key string, data json.RawMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.cache[key]; !ok {
		p.cache[key] = data
		observability.UpdateCacheSize(len(p.cache))
	}
}

// FlushCache drops every cached response. This is the only eviction path.
func (p *Pool) FlushCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]json.RawMessage)
	observability.UpdateCacheSize(0)
}

// Stats returns an aggregate snapshot.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Stats{
		TotalCalls: p.totalCalls,
		Successful: p.successful,
		Failed:     p.failed,
		CacheHits:  p.cacheHits,
	}
	if p.successful > 0 {
		s.AvgLatency = p.latencySum / time.Duration(p.successful)
	}
	return s
}

// DetailedStats returns the aggregate snapshot plus per-endpoint health.
func (p *Pool) DetailedStats() DetailedStats {
	p.mu.Lock()
	eps := make([]EndpointStats, 0, len(p.endpoints))
	for _, ep := range p.endpoints {
		eps = append(eps, EndpointStats{
			Label:               ep.cfg.Label,
			URL:                 ep.cfg.URL,
			Tier:                ep.cfg.Tier,
			ConsecutiveFailures: ep.consecutiveFailures,
		})
	}
	cacheSize := len(p.cache)
	p.mu.Unlock()

	return DetailedStats{
		Stats:     p.Stats(),
		Endpoints: eps,
		CacheSize: cacheSize,
	}
}
