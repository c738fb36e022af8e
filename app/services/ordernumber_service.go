package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"KioskApp/app/config"
)

// MaxOrderNumber is the highest order number issued before wrapping to 1
const MaxOrderNumber = 9999

// OrderNumberService issues order numbers either from a small local sequence
// file or from the remote order system, chosen by configuration.
type OrderNumberService struct {
	mode     string
	filePath string
	http     *HttpService
}

// NewOrderNumberService creates an order number source. http may be nil when
// the mode is "local".
func NewOrderNumberService(cfg config.OrderNumberConfig, http *HttpService) *OrderNumberService {
	return &OrderNumberService{
		mode:     cfg.Mode,
		filePath: cfg.FilePath,
		http:     http,
	}
}

// NextOrderNumber returns the next order number in [1, MaxOrderNumber]
func (s *OrderNumberService) NextOrderNumber() (int, error) {
	if s.mode == "remote" {
		if s.http == nil {
			return 0, fmt.Errorf("remote order numbers configured without an order API endpoint")
		}
		return s.http.GetOrderNumber()
	}
	return s.nextLocal()
}

// nextLocal reads the last issued number from the sequence file, advances it
// with wraparound at MaxOrderNumber, persists it and returns it. A missing
// or unparsable file restarts the sequence at 1.
func (s *OrderNumberService) nextLocal() (int, error) {
	next := 1

	if content, err := os.ReadFile(s.filePath); err == nil {
		if last, err := strconv.Atoi(strings.TrimSpace(string(content))); err == nil {
			next = (last % MaxOrderNumber) + 1
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return 0, fmt.Errorf("could not create order number directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, []byte(strconv.Itoa(next)), 0644); err != nil {
		return 0, fmt.Errorf("could not persist order number: %w", err)
	}

	return next, nil
}
