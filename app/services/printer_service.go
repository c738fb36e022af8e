package services

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"KioskApp/app/config"
)

// PrinterService is the synchronous byte sink for the thermal printer. Writes
// go out in caller order with no buffering; a connection failure is fatal for
// that print attempt and is never retried here.
type PrinterService struct {
	cfg        config.PrinterConfig
	connection io.WriteCloser
}

// NewPrinterService creates a transport for the configured printer
func NewPrinterService(cfg config.PrinterConfig) *PrinterService {
	return &PrinterService{cfg: cfg}
}

func (s *PrinterService) timeout() time.Duration {
	if s.cfg.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.cfg.TimeoutSeconds) * time.Second
}

// Connect opens the printer connection. Type "network" dials TCP with a
// bounded timeout; type "file" writes to a local file for testing.
func (s *PrinterService) Connect() error {
	switch s.cfg.Type {
	case "network", "":
		address := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
		conn, err := net.DialTimeout("tcp", address, s.timeout())
		if err != nil {
			return fmt.Errorf("failed to connect to printer at %s: %w", address, err)
		}
		s.connection = conn

	case "file":
		file, err := os.Create(s.cfg.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create printer output file at %s: %w", s.cfg.FilePath, err)
		}
		s.connection = file

	default:
		return fmt.Errorf("unsupported printer type: %s", s.cfg.Type)
	}

	return nil
}

// WriteBytes writes raw command bytes
func (s *PrinterService) WriteBytes(data ...byte) error {
	return s.write(data)
}

// WriteString writes ASCII text. Characters outside the printer's base set
// are replaced with spaces.
func (s *PrinterService) WriteString(text string) error {
	data := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 128 {
			data = append(data, byte(r))
		} else {
			data = append(data, ' ')
		}
	}
	return s.write(data)
}

func (s *PrinterService) write(data []byte) error {
	if s.connection == nil {
		return fmt.Errorf("no printer connection")
	}
	if conn, ok := s.connection.(net.Conn); ok {
		if err := conn.SetWriteDeadline(time.Now().Add(s.timeout())); err != nil {
			return fmt.Errorf("failed to set printer write deadline: %w", err)
		}
	}
	if _, err := s.connection.Write(data); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	return nil
}

// Close releases the printer connection. Safe to call on every exit path.
func (s *PrinterService) Close() {
	if s.connection != nil {
		s.connection.Close()
		s.connection = nil
	}
}

// Print sends one fully encoded receipt: connect, write everything, close.
func (s *PrinterService) Print(data []byte) error {
	if err := s.Connect(); err != nil {
		return err
	}
	defer s.Close()

	if err := s.write(data); err != nil {
		return err
	}
	return nil
}
