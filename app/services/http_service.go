package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"KioskApp/app/config"
)

// HttpService talks to the remote order system. Both calls are single
// synchronous POSTs with a bounded timeout and no retry; failures are the
// caller's to surface.
type HttpService struct {
	url              string
	notifyWithNumber bool
	client           *http.Client
}

// NewHttpService creates a client for the configured order API
func NewHttpService(cfg config.OrderAPIConfig) *HttpService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HttpService{
		url:              cfg.URL,
		notifyWithNumber: cfg.NotifyWithNumber,
		client:           &http.Client{Timeout: timeout},
	}
}

// GetOrderNumber fetches the next order number from the remote order system.
// The response body is the number as UTF-8 text; an empty or malformed body
// is an error.
func (s *HttpService) GetOrderNumber() (int, error) {
	body, err := s.postForm(url.Values{"instruction": {"getOrderNumber"}})
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(body)
	if text == "" {
		return 0, fmt.Errorf("order system returned an empty order number")
	}
	number, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("order system returned a malformed order number %q: %w", text, err)
	}
	return number, nil
}

// NotifyOrderComplete tells the order system an order was finalized and
// returns the response body for the operator.
func (s *HttpService) NotifyOrderComplete(orderNumber int) (string, error) {
	form := url.Values{}
	if s.notifyWithNumber {
		form.Set("orderNumber", strconv.Itoa(orderNumber))
	} else {
		form.Set("instruction", "completeOrder")
	}
	return s.postForm(form)
}

func (s *HttpService) postForm(form url.Values) (string, error) {
	if s.url == "" {
		return "", fmt.Errorf("order API URL is not configured")
	}

	resp, err := s.client.PostForm(s.url, form)
	if err != nil {
		return "", fmt.Errorf("order system request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read order system response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("order system returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return string(body), nil
}
