package services

import (
	"context"
	"fmt"
	"time"

	"github.com/grandcat/zeroconf"
)

// DetectedPrinter is a network thermal printer found via mDNS
type DetectedPrinter struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Raw-socket thermal printers announce the pdl-datastream (port 9100) service
const printerServiceType = "_pdl-datastream._tcp"

// DetectNetworkPrinters browses the local network for thermal printers for
// up to the given duration. An empty result is not an error; operators can
// still enter a printer address by hand.
func DetectNetworkPrinters(timeout time.Duration) ([]DetectedPrinter, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	var printers []DetectedPrinter
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			printer := DetectedPrinter{
				Name: entry.Instance,
				Port: entry.Port,
			}
			if len(entry.AddrIPv4) > 0 {
				printer.Address = entry.AddrIPv4[0].String()
			} else if entry.HostName != "" {
				printer.Address = entry.HostName
			}
			if printer.Address != "" {
				printers = append(printers, printer)
			}
		}
	}()

	if err := resolver.Browse(ctx, printerServiceType, "local.", entries); err != nil {
		return nil, fmt.Errorf("failed to browse for printers: %w", err)
	}

	<-ctx.Done()
	<-done

	return printers, nil
}
