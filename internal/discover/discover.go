// Package discover locates a farmd daemon on the local network via
// mDNS/DNS-SD. farmd advertises itself as a _farmd._tcp service; the first
// instance that answers wins. Discovery runs when asked for explicitly and
// as a quick fallback when no address is configured.
package discover

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	serviceType = "_farmd._tcp"
	mdnsDomain  = "local."

	defaultTimeout = 5 * time.Second
)

// Find browses for a farmd instance and returns its host:port. It waits at
// most timeout (or defaultTimeout when non-positive) before giving up.
func Find(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("mdns resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Browse closes entries when the context ends.
	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if addr, ok := endpoint(e); ok {
				select {
				case found <- addr:
				default:
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, serviceType, mdnsDomain, entries); err != nil {
		return "", fmt.Errorf("mdns browse: %w", err)
	}

	select {
	case addr := <-found:
		return addr, nil
	case <-ctx.Done():
		return "", fmt.Errorf("no farmd instance found within %s", timeout)
	}
}

// endpoint extracts a dialable host:port from a service entry. IPv4 only,
// matching what farmd advertises.
func endpoint(e *zeroconf.ServiceEntry) (string, bool) {
	if e == nil || e.Port == 0 {
		return "", false
	}
	for _, ip := range e.AddrIPv4 {
		return net.JoinHostPort(ip.String(), strconv.Itoa(e.Port)), true
	}
	return "", false
}
