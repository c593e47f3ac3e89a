package attio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-logger/glog"
)

const (
	DefaultBaseURL = "https://api.attio.com"
	DefaultTimeout = 30 * time.Second
)

// Config é passado explicitamente na construção. Nada de client global com auth mutável.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     glog.Logger
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  glog.Logger
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = glog.Nop()
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}
}

// AssertRecord cria ou atualiza um record, casando pelo matchingAttribute.
func (c *Client) AssertRecord(ctx context.Context, object, matchingAttribute string, body AssertRecordRequest) (*RecordResponse, error) {
	path := fmt.Sprintf("/v2/objects/%s/records", url.PathEscape(object))
	query := url.Values{}
	query.Set("matching_attribute", matchingAttribute)

	var out RecordResponse
	if err := c.do(ctx, http.MethodPut, path, query, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssertListEntry cria ou atualiza a entry do parent na lista.
func (c *Client) AssertListEntry(ctx context.Context, list string, body AssertListEntryRequest) (*ListEntryResponse, error) {
	path := fmt.Sprintf("/v2/lists/%s/entries", url.PathEscape(list))

	var out ListEntryResponse
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNote sempre cria uma nota nova. Não é idempotente.
func (c *Client) CreateNote(ctx context.Context, body CreateNoteRequest) (*NoteResponse, error) {
	var out NoteResponse
	if err := c.do(ctx, http.MethodPost, "/v2/notes", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Configured informa se há credencial. Usado pelo health check.
func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.apiKey) != ""
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return badResponseError(fmt.Errorf("erro ao serializar payload: %w", err), path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return transportError(err, path)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("❌ Attio: falha de transporte", "method", method, "path", path, "error", err)
		return transportError(err, path)
	}
	defer resp.Body.Close()

	c.logger.Debug("Attio: resposta recebida",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		_ = json.Unmarshal(raw, &apiErr)
		c.logger.Warn("⚠️ Attio: resposta de erro",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"code", apiErr.Code,
		)
		return apiError(resp.StatusCode, apiErr, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return badResponseError(err, path)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
