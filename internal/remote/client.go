package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"

	"github.com/hrishi7/lingocare-studio/internal/curriculum"
)

// Envelope wraps every non-streaming response from the generation service.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// APIError is the error half of the envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GenerateResult is the data payload of a non-streaming generation.
type GenerateResult struct {
	Curriculum curriculum.Curriculum `json:"curriculum"`
	AIProvider string                `json:"aiProvider"`
}

// HealthStatus is the data payload of the health check.
type HealthStatus struct {
	Status     string `json:"status"`
	AIProvider string `json:"aiProvider"`
	Timestamp  string `json:"timestamp"`
}

// Client speaks the plain request/response endpoints of the service.
type Client struct {
	rc           *resty.Client
	generatePath string
	healthPath   string
}

func NewClient(baseURL, generatePath, healthPath string) *Client {
	return &Client{
		rc:           resty.New().SetBaseURL(baseURL),
		generatePath: generatePath,
		healthPath:   healthPath,
	}
}

// Generate runs the non-streaming variant: one upload in, one envelope out.
func (c *Client) Generate(ctx context.Context, r io.Reader, filename string) (*GenerateResult, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		Post(c.generatePath)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	var out GenerateResult
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	out.Curriculum.Normalize()
	return &out, nil
}

// Health queries the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		Get(c.healthPath)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}

	var out HealthStatus
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decodeEnvelope(resp *resty.Response, data any) error {
	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("bad response (%d): %w", resp.StatusCode(), err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request failed (%d)", resp.StatusCode())
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		return fmt.Errorf("bad envelope data: %w", err)
	}
	return nil
}
