package httptool

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// privateRanges are the CIDR blocks for private/loopback networks.
var privateRanges = func() []*net.IPNet {
	cidrs := []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}

	nets := make([]*net.IPNet, 0, len(cidrs))

	for _, cidr := range cidrs {
		_, ipNet, _ := net.ParseCIDR(cidr)
		nets = append(nets, ipNet)
	}

	return nets
}()

// isPrivateIP returns true if the given IP falls within any private/loopback range.
func isPrivateIP(ip net.IP) bool {
	for _, r := range privateRanges {
		if r.Contains(ip) {
			return true
		}
	}

	return false
}

// guardedTransport returns a non-pooling *http.Transport whose DialContext
// validates resolved IPs against private ranges at connection time. Checking
// at dial time rather than before the request prevents DNS rebinding, where
// a hostname resolves publicly during validation but privately when the
// connection is made.
func guardedTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: -1,
	}

	return &http.Transport{
		DisableKeepAlives: true,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, fmt.Errorf("httptool: invalid address %s: %w", addr, err)
			}

			ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, fmt.Errorf("httptool: DNS lookup failed for %s: %w", host, err)
			}

			for _, ip := range ips {
				if isPrivateIP(ip.IP) {
					return nil, fmt.Errorf("httptool: connection to private address %s blocked", ip.IP)
				}
			}

			// Dial the first resolved IP to avoid a second DNS lookup.
			return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
		},
	}
}
