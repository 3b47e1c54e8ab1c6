package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/ospteam/marketplace/pkg/logger"
	"github.com/ospteam/marketplace/pkg/prom"
)

var (
	// ErrSendFailed wraps any provider-side failure. Delivery is best-effort
	// and inline with the request: no retry, no dead-letter.
	ErrSendFailed = errors.New("mail send failed")
)

// Mailer delivers templated notifications. Consumers declare the interface
// they need; this is the full surface the mail package offers.
type Mailer interface {
	SendAccountCredentials(ctx context.Context, recipient, name, password string) error
	SendPurchaseRequestToSeller(ctx context.Context, recipient, itemName string, offerPrice float64) error
	SendPurchaseRequestToBuyer(ctx context.Context, recipient, itemName string, offerPrice float64) error
	SendApproval(ctx context.Context, recipient, itemName string) error
	SendRejection(ctx context.Context, recipient, itemName string) error
}

type Config struct {
	ProviderURL string
	FromAddress string
	Timeout     time.Duration
	MaxConns    int
}

type sendRequest struct {
	From      string `json:"from"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type sendResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type Client struct {
	config *Config
	client *fasthttp.Client
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.ProviderURL == "" {
		return nil, errors.New("provider url is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxConns <= 0 {
		config.MaxConns = 64
	}

	c := &Client{
		config: config,
		client: &fasthttp.Client{
			MaxConnsPerHost:     config.MaxConns,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
		},
	}

	logger.Info("Mail client initialized", "provider", config.ProviderURL, "timeout", config.Timeout)

	return c, nil
}

const (
	templateCredentials    = "account_credentials"
	templatePurchaseSeller = "purchase_request_seller"
	templatePurchaseBuyer  = "purchase_request_buyer"
	templateOrderApproval  = "order_approval"
	templateOrderRejection = "order_rejection"
)

func (c *Client) SendAccountCredentials(ctx context.Context, recipient, name, password string) error {
	subject := "Welcome to OSP Marketplace"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account has been created.\nLogin email: %s\nPassword: %s\n\nRegards,\nOSP Marketplace",
		name, recipient, password,
	)
	return c.send(ctx, templateCredentials, recipient, subject, body)
}

func (c *Client) SendPurchaseRequestToSeller(ctx context.Context, recipient, itemName string, offerPrice float64) error {
	subject := "New purchase request"
	body := fmt.Sprintf(
		"You have received a purchase request for %q at an offer price of %.2f.\nSign in to accept or reject it.",
		itemName, offerPrice,
	)
	return c.send(ctx, templatePurchaseSeller, recipient, subject, body)
}

func (c *Client) SendPurchaseRequestToBuyer(ctx context.Context, recipient, itemName string, offerPrice float64) error {
	subject := "Purchase request raised"
	body := fmt.Sprintf(
		"Your purchase request for %q at an offer price of %.2f has been sent to the seller.",
		itemName, offerPrice,
	)
	return c.send(ctx, templatePurchaseBuyer, recipient, subject, body)
}

func (c *Client) SendApproval(ctx context.Context, recipient, itemName string) error {
	subject := "Purchase request accepted"
	body := fmt.Sprintf(
		"Good news: the seller accepted your purchase request for %q.\nSign in to complete the payment.",
		itemName,
	)
	return c.send(ctx, templateOrderApproval, recipient, subject, body)
}

func (c *Client) SendRejection(ctx context.Context, recipient, itemName string) error {
	subject := "Purchase request rejected"
	body := fmt.Sprintf(
		"The seller rejected your purchase request for %q. The item is back on sale.",
		itemName,
	)
	return c.send(ctx, templateOrderRejection, recipient, subject, body)
}

func (c *Client) send(ctx context.Context, template, recipient, subject, body string) error {
	reqBody, err := json.Marshal(sendRequest{
		From:      c.config.FromAddress,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	startTime := time.Now()
	response, err := c.doRequest(ctx, "POST", "/api/v1/mail/send", reqBody)
	prom.ObserveHistogramVec(prom.SystemMail, prom.MetricMailSendDuration, time.Since(startTime).Seconds(), template)

	if err != nil {
		prom.IncCounter(prom.SystemMail, prom.MetricMailSendFailures)
		logger.Warn("Mail send failed", "template", template, "recipient", recipient, "error", err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	var resp sendResponse
	if err := json.Unmarshal(response, &resp); err != nil {
		prom.IncCounter(prom.SystemMail, prom.MetricMailSendFailures)
		return fmt.Errorf("%w: unmarshal response: %v", ErrSendFailed, err)
	}
	if resp.Status != "sent" {
		prom.IncCounter(prom.SystemMail, prom.MetricMailSendFailures)
		return fmt.Errorf("%w: provider status %q: %s", ErrSendFailed, resp.Status, resp.Error)
	}

	logger.Info("Mail sent", "template", template, "recipient", recipient, "latency_ms", time.Since(startTime).Milliseconds())

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.ProviderURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode != fasthttp.StatusOK && statusCode != fasthttp.StatusAccepted {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", statusCode, resp.Body())
	}

	result := make([]byte, len(resp.Body()))
	copy(result, resp.Body())

	return result, nil
}
