// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package similarity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/logging"
)

// HuggingFaceName identifies the Hugging Face scorer.
const HuggingFaceName = "huggingface"

// Inference tasks understood by HuggingFace.
const (
	TaskSentenceSimilarity = "sentence-similarity"
	TaskFeatureExtraction  = "feature-extraction"
)

const (
	modelLoadingMarker = "currently loading"
	maxResponseBytes   = 8 << 20
)

// HuggingFace scores texts through the Hugging Face inference API.
type HuggingFace struct {
	endpoint     string
	token        string
	task         string
	maxRetries   int
	retryDelay   time.Duration
	waitForModel bool
	httpClient   *http.Client
	logger       zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewHuggingFace builds the provider from configuration. A missing token is
// not an error here; Score reports ErrUnavailable instead.
func NewHuggingFace(cfg config.SimilarityConfig, httpClient *http.Client) *HuggingFace {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	task := cfg.Task
	if task == "" {
		task = TaskSentenceSimilarity
	}
	return &HuggingFace{
		endpoint:     strings.TrimRight(cfg.BaseURL, "/") + "/models/" + cfg.Model,
		token:        cfg.APIToken,
		task:         task,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryDelay:   cfg.RetryDelay,
		waitForModel: cfg.WaitForModel,
		httpClient:   httpClient,
		logger:       logging.WithComponent("huggingface"),
		sleep:        sleepContext,
	}
}

// Name implements Scorer.
func (*HuggingFace) Name() string { return HuggingFaceName }

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSimilarityInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

type hfRequest struct {
	Inputs  interface{} `json:"inputs"`
	Options hfOptions   `json:"options"`
}

type hfErrorBody struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Score implements Scorer.
func (h *HuggingFace) Score(ctx context.Context, base string, candidates []string) ([]float64, error) {
	if h.token == "" {
		return nil, unavailable(HuggingFaceName, errors.New("no API token configured"))
	}
	if len(candidates) == 0 {
		return []float64{}, nil
	}

	req := hfRequest{Options: hfOptions{WaitForModel: h.waitForModel}}
	if h.task == TaskFeatureExtraction {
		req.Inputs = append([]string{base}, candidates...)
	} else {
		req.Inputs = hfSimilarityInputs{SourceSentence: base, Sentences: candidates}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, unavailable(HuggingFaceName, err)
	}

	body, err := h.postWithRetries(ctx, payload)
	if err != nil {
		return nil, err
	}

	scores, err := parseScores(body, len(candidates))
	if err != nil {
		return nil, unavailable(HuggingFaceName, err)
	}
	return scores, nil
}

// postWithRetries sends payload up to maxRetries+1 times. Network errors,
// 5xx responses and "model loading" errors are retried after
// retryDelay x (attempt+1); anything else is final.
func (h *HuggingFace) postWithRetries(ctx context.Context, payload []byte) ([]byte, error) {
	log := logging.Scoped(ctx, h.logger)

	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		body, retry, err := h.post(ctx, payload)
		if err == nil {
			return body, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		lastErr = err
		if !retry || attempt == h.maxRetries {
			break
		}

		delay := h.retryDelay * time.Duration(attempt+1)
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("delay", delay).Msg("Hugging Face request failed, retrying")
		if err := h.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, unavailable(HuggingFaceName, lastErr)
}

// post performs one request. retry reports whether a failure is transient.
func (h *HuggingFace) post(ctx context.Context, payload []byte) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body))
	case isModelLoading(body):
		return nil, true, fmt.Errorf("HTTP %d: model is loading", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body))
	}
}

func isModelLoading(body []byte) bool {
	var e hfErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(e.Error), modelLoadingMarker)
}

// parseScores accepts either pairwise scores ([]float, one per candidate)
// or embeddings ([][]float with the base first, or token-level [][][]float
// which is mean-pooled).
func parseScores(body []byte, n int) ([]float64, error) {
	var flat []float64
	if err := json.Unmarshal(body, &flat); err == nil {
		if len(flat) != n {
			return nil, fmt.Errorf("got %d scores for %d candidates", len(flat), n)
		}
		return flat, nil
	}

	var embeddings [][]float64
	if err := json.Unmarshal(body, &embeddings); err != nil {
		var tokens [][][]float64
		if err := json.Unmarshal(body, &tokens); err != nil {
			return nil, fmt.Errorf("unrecognised response shape: %s", truncate(body))
		}
		embeddings = make([][]float64, len(tokens))
		for i, t := range tokens {
			if embeddings[i] = meanPool(t); embeddings[i] == nil {
				return nil, fmt.Errorf("inconsistent token embeddings for input %d", i)
			}
		}
	}

	if len(embeddings) != n+1 {
		return nil, fmt.Errorf("got %d embeddings for %d inputs", len(embeddings), n+1)
	}
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = Cosine(embeddings[0], embeddings[i+1])
	}
	return scores, nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
