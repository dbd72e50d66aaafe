package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
)

const indexTimeout = 10 * time.Second

// IndexClient mirrors committed stories into the events core. A false
// result means the story must be reconciled later; it never unwinds the
// already-committed database write.
type IndexClient struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func NewIndexClient(log *logger.Logger, cfg Config) (*IndexClient, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &IndexClient{
		log:     log.With("service", "SolrIndexClient"),
		baseURL: strings.TrimRight(cfg.EventURL, "/"),
		http: &http.Client{
			Timeout: indexTimeout,
		},
	}, nil
}

// Index pushes one story id into the events core and reports success.
func (c *IndexClient) Index(ctx context.Context, storyID string) bool {
	storyID = strings.TrimSpace(storyID)
	if storyID == "" {
		return false
	}

	payload := []map[string]any{{"id": storyID}}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		c.log.Warn("index request encode failed", "story_id", storyID, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/update?commit=true", &buf)
	if err != nil {
		c.log.Warn("index request build failed", "story_id", storyID, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("index request failed", "story_id", storyID, "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("index request returned non-2xx", "story_id", storyID, "status", resp.StatusCode)
		return false
	}
	return true
}
