package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1"

// ErrTimeout is returned when a dubbing job does not finish within the
// polling budget.
var ErrTimeout = errors.New("dubbing job timed out")

// ProviderError is a non-success response from the ElevenLabs API. Detail
// carries the response body (or the provider's reported failure reason)
// for server-side diagnostics.
type ProviderError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("elevenlabs %s: http %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("elevenlabs %s: %s", e.Op, e.Detail)
}

// Config holds client settings. HTTPClient and Sleep are injectable so
// tests can run the polling loop without real network delays.
type Config struct {
	APIKey          string
	BaseURL         string
	PollInterval    time.Duration
	MaxPollAttempts int
	HTTPClient      *http.Client
	Sleep           func(time.Duration)
}

// Client talks to the ElevenLabs dubbing API: submit an audio file, poll
// the job until it is dubbed, then fetch the dubbed audio.
type Client struct {
	apiKey          string
	baseURL         string
	pollInterval    time.Duration
	maxPollAttempts int
	httpClient      *http.Client
	sleep           func(time.Duration)
}

// NewClient creates a dubbing client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("elevenlabs: API key is required")
	}
	c := &Client{
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
		httpClient:      cfg.HTTPClient,
		sleep:           cfg.Sleep,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 2 * time.Second
	}
	if c.maxPollAttempts <= 0 {
		c.maxPollAttempts = 30
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	return c, nil
}

// Request describes one translation: raw audio bytes plus language codes.
// SourceLanguage defaults to "en" when empty.
type Request struct {
	Audio          []byte
	FileName       string
	SourceLanguage string
	TargetLanguage string
}

// Translate runs the full dubbing workflow and returns the dubbed audio
// bytes (an MPEG audio stream). A provider-side failure or an exhausted
// polling budget is returned as an error; there is no automatic retry.
func (c *Client) Translate(ctx context.Context, req Request) ([]byte, error) {
	src := req.SourceLanguage
	if src == "" {
		src = "en"
	}

	dubbingID, err := c.submitDubbing(ctx, req.Audio, req.FileName, src, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	if err := c.awaitDubbing(ctx, dubbingID); err != nil {
		return nil, err
	}

	return c.fetchDubbedAudio(ctx, dubbingID, req.TargetLanguage)
}

type dubbingSubmitResponse struct {
	DubbingID           string  `json:"dubbing_id"`
	ExpectedDurationSec float64 `json:"expected_duration_sec"`
}

type dubbingStatusResponse struct {
	DubbingID string `json:"dubbing_id"`
	Status    string `json:"status"`
	Error     string `json:"error"`
}

// submitDubbing uploads the audio and returns the provider's job id.
func (c *Client) submitDubbing(ctx context.Context, audio []byte, fileName, sourceLang, targetLang string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.WriteField("source_lang", sourceLang); err != nil {
		return "", err
	}
	if err := mw.WriteField("target_lang", targetLang); err != nil {
		return "", err
	}
	if err := mw.WriteField("name", fileName); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/dubbing", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", c.providerError("submit", resp)
	}

	var sr dubbingSubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", &ProviderError{Op: "submit", Detail: fmt.Sprintf("malformed response: %v", err)}
	}
	if sr.DubbingID == "" {
		return "", &ProviderError{Op: "submit", Detail: "response missing dubbing_id"}
	}
	return sr.DubbingID, nil
}

// awaitDubbing polls the job status at a fixed interval until it reports
// dubbed, fails, or the attempt budget runs out.
func (c *Client) awaitDubbing(ctx context.Context, dubbingID string) error {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(c.pollInterval)
		}

		status, err := c.pollDubbing(ctx, dubbingID)
		if err != nil {
			return err
		}

		switch status.Status {
		case "dubbed":
			return nil
		case "dubbing":
			// still processing, wait for the next attempt
		case "failed":
			detail := status.Error
			if detail == "" {
				detail = "dubbing job failed"
			}
			return &ProviderError{Op: "status", Detail: detail}
		default:
			return &ProviderError{Op: "status", Detail: fmt.Sprintf("unrecognized dubbing status %q", status.Status)}
		}
	}
	return ErrTimeout
}

func (c *Client) pollDubbing(ctx context.Context, dubbingID string) (*dubbingStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dubbing/"+dubbingID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, c.providerError("status", resp)
	}

	var sr dubbingStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &ProviderError{Op: "status", Detail: fmt.Sprintf("malformed response: %v", err)}
	}
	return &sr, nil
}

// fetchDubbedAudio retrieves the dubbed audio track for the target
// language of a finished job.
func (c *Client) fetchDubbedAudio(ctx context.Context, dubbingID, targetLang string) ([]byte, error) {
	url := fmt.Sprintf("%s/dubbing/%s/audio/%s", c.baseURL, dubbingID, targetLang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, c.providerError("audio", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, &ProviderError{Op: "audio", Detail: "empty audio response"}
	}
	return audio, nil
}

func (c *Client) providerError(op string, resp *http.Response) *ProviderError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ProviderError{Op: op, StatusCode: resp.StatusCode, Detail: string(b)}
}
