package webhook

import (
	"fmt"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"quote-wizard/pkg/models"
)

// Client defines the interface for delivering leads to the configured webhook
type Client interface {
	Send(payload models.SubmissionPayload) error
}

type clientImpl struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewClient creates a new webhook client. A zero timeout waits indefinitely.
func NewClient(url string, timeout time.Duration) Client {
	return &clientImpl{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			Name: "quote-wizard",
		},
	}
}

// Send makes exactly one POST. The response status and body are not
// inspected; only transport failures are reported.
func (c *clientImpl) Send(payload models.SubmissionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	if c.timeout > 0 {
		err = c.client.DoTimeout(req, resp, c.timeout)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return fmt.Errorf("error posting to webhook: %w", err)
	}

	log.Printf("Webhook responded with status %d", resp.StatusCode())
	return nil
}
