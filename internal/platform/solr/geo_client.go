package solr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
)

// Location is the action-location block resolved from the geo core. All
// fields are empty (lat/long nil) when the name could not be resolved.
type Location struct {
	FullName    string
	CountryCode string // alpha-2, as stored in the geo core
	ADM1Code    string
	ADM2Code    string
	Lat         *float64
	Long        *float64
	FeatureID   string
}

type geoDoc struct {
	ASCIIName  string          `json:"asciiname"`
	Country    string          `json:"countrycode"`
	Admin1Code string          `json:"admin1code"`
	Admin2Code string          `json:"admin2code"`
	Latitude   json.RawMessage `json:"latitude"`
	Longitude  json.RawMessage `json:"longitude"`
	ID         string          `json:"id"`
}

type selectResponse struct {
	Response struct {
		NumFound int      `json:"numFound"`
		Start    int      `json:"start"`
		Docs     []geoDoc `json:"docs"`
	} `json:"response"`
}

// GeoClient reads the geo core. Every transport, timeout, or decode failure
// degrades to a zero-result response; lookups never surface an error.
type GeoClient struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func NewGeoClient(log *logger.Logger, cfg Config) (*GeoClient, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &GeoClient{
		log:     log.With("service", "SolrGeoClient"),
		baseURL: strings.TrimRight(cfg.GeoURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Lookup resolves a free-text location name to its geographic attributes.
// The first matching document wins; zero matches yield an empty Location.
func (c *GeoClient) Lookup(ctx context.Context, name string) Location {
	doc, ok := c.firstDoc(ctx, name)
	if !ok {
		return Location{}
	}
	return Location{
		FullName:    doc.ASCIIName,
		CountryCode: doc.Country,
		ADM1Code:    doc.Admin1Code,
		ADM2Code:    doc.Admin2Code,
		Lat:         parseOptionalFloat(doc.Latitude),
		Long:        parseOptionalFloat(doc.Longitude),
		FeatureID:   doc.ID,
	}
}

// CountryCode resolves a country name to its alpha-2 code, or "" when the
// geo core has no match.
func (c *GeoClient) CountryCode(ctx context.Context, countryName string) string {
	doc, ok := c.firstDoc(ctx, countryName)
	if !ok {
		return ""
	}
	return strings.TrimSpace(doc.Country)
}

func (c *GeoClient) firstDoc(ctx context.Context, q string) (geoDoc, bool) {
	q = strings.TrimSpace(q)
	if q == "" {
		return geoDoc{}, false
	}

	reqURL := c.baseURL + "/select?indent=on&q=" + url.QueryEscape(q) + "&wt=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Warn("geo query build failed", "query", q, "error", err)
		return geoDoc{}, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.warnTransport(q, err)
		return geoDoc{}, false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("geo response read failed", "query", q, "error", err)
		return geoDoc{}, false
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("geo query returned non-2xx", "query", q, "status", resp.StatusCode)
		return geoDoc{}, false
	}

	var parsed selectResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.log.Warn("geo response decode failed", "query", q, "error", err)
		return geoDoc{}, false
	}
	if len(parsed.Response.Docs) == 0 {
		return geoDoc{}, false
	}
	return parsed.Response.Docs[0], true
}

func (c *GeoClient) warnTransport(q string, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		c.log.Warn("geo query timed out, substituting empty result", "query", q, "timeout", c.http.Timeout/time.Second)
	default:
		c.log.Warn("geo query transport failed, substituting empty result", "query", q, "error", err)
	}
}

// parseOptionalFloat tolerates the geo core storing coordinates as either
// JSON numbers or strings; a non-numeric value persists as NULL.
func parseOptionalFloat(raw json.RawMessage) *float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
