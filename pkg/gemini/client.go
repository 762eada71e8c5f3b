package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vivaprep/vivaprep/pkg/transcript"
)

const (
	defaultModel    = "gemini-2.0-flash-001"
	defaultLocation = "us-central1"

	// Hosted endpoint used in API-key mode.
	generativeLanguageBase = "https://generativelanguage.googleapis.com/v1beta"
)

// Config identifies the remote model and carries the credential bundle.
// How the values are provisioned is the caller's concern; the client only
// consumes them. Exactly one credential strategy is used per client:
// Project selects the Vertex regional endpoint with a bearer AccessToken,
// otherwise APIKey selects the hosted endpoint.
type Config struct {
	Model       string
	APIKey      string
	AccessToken string
	Project     string
	Location    string

	// Endpoint overrides the computed URL entirely. Used by tests.
	Endpoint string
}

// Client calls the generateContent API over plain HTTP.
type Client struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
}

// NewClient creates a Client, filling in the default model and location.
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Location == "" {
		config.Location = defaultLocation
	}

	return &Client{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			// Generation can be slow on long transcripts
			Timeout: 2 * time.Minute,
		},
	}
}

// Configured reports whether the client holds enough credentials to make a
// call at all.
func (c *Client) Configured() bool {
	if c.config.Endpoint != "" {
		return true
	}
	if c.config.Project != "" {
		return c.config.AccessToken != ""
	}
	return c.config.APIKey != ""
}

// Model returns the model identifier this client targets.
func (c *Client) Model() string {
	return c.config.Model
}

// EndpointMode names the endpoint strategy in use, for diagnostics.
func (c *Client) EndpointMode() string {
	switch {
	case c.config.Endpoint != "":
		return "custom"
	case c.config.Project != "":
		return "vertex"
	default:
		return "api-key"
	}
}

// Generate submits a transcript plus the system instruction and classifies
// the outcome. Transport failures never escape as errors; they come back
// as a Result tagged transport-error, with the cause logged here.
func (c *Client) Generate(ctx context.Context, ts transcript.Transcript, instruction string) Result {
	req := c.buildRequest(ts, instruction)

	body, err := json.Marshal(req)
	if err != nil {
		c.logger.Error("failed to marshal generate request", zap.Error(err))
		return failed(ReasonTransport, "request encoding failed")
	}

	url := c.url()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build generate request", zap.Error(err))
		return failed(ReasonTransport, "request construction failed")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuth(httpReq)

	c.logger.Debug("calling model endpoint",
		zap.String("model", c.config.Model),
		zap.String("mode", c.EndpointMode()),
		zap.Int("turns", len(ts)),
		zap.Int("body_size", len(body)),
	)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("model request failed", zap.Error(err))
		return failed(ReasonTransport, "upstream request failed")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error("failed to read model response", zap.Error(err))
		return failed(ReasonTransport, "upstream read failed")
	}

	if httpResp.StatusCode != http.StatusOK {
		c.logger.Error("model endpoint returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return failed(ReasonTransport, fmt.Sprintf("upstream status %d", httpResp.StatusCode))
	}

	var resp GenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		c.logger.Error("failed to decode model response",
			zap.Error(err),
			zap.ByteString("body", respBody),
		)
		return failed(ReasonMalformed, "undecodable response body")
	}

	result := Extract(&resp)
	c.logger.Debug("model call finished",
		zap.Bool("ok", result.OK()),
		zap.String("reason", string(result.Reason)),
		zap.Duration("duration", time.Since(start)),
	)

	return result
}

// buildRequest assembles the wire request from a transcript. Parameters and
// safety settings are the service's fixed constants.
func (c *Client) buildRequest(ts transcript.Transcript, instruction string) *generateRequest {
	contents := make([]Content, len(ts))
	for i, turn := range ts {
		contents[i] = Content{
			Role:  string(turn.Role),
			Parts: []Part{{Text: turn.Text}},
		}
	}

	req := &generateRequest{
		Contents:         contents,
		GenerationConfig: defaultGenerationConfig(),
		SafetySettings:   defaultSafetySettings(),
		Tools:            []Tool{{GoogleSearch: &struct{}{}}},
	}

	if instruction != "" {
		req.SystemInstruction = &Content{Parts: []Part{{Text: instruction}}}
	}

	return req
}

func (c *Client) url() string {
	if c.config.Endpoint != "" {
		return c.config.Endpoint
	}
	if c.config.Project != "" {
		return fmt.Sprintf(
			"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
			c.config.Location, c.config.Project, c.config.Location, c.config.Model,
		)
	}
	return fmt.Sprintf("%s/models/%s:generateContent", generativeLanguageBase, c.config.Model)
}

func (c *Client) setAuth(req *http.Request) {
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
		return
	}
	if c.config.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.config.APIKey)
	}
}
