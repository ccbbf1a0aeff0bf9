package middleware

import (
	"net"
	"strings"

	"manero/config"
	"manero/internal/errors"

	"github.com/labstack/echo/v4"
)

// NewIPExtractor decides what c.RealIP() returns. Without trusted proxies the
// socket peer is the client and forwarding headers are ignored. With trusted
// proxies only their X-Forwarded-For entries are skipped.
func NewIPExtractor(cfg *config.Config) (echo.IPExtractor, error) {
	if len(cfg.HTTP.TrustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, proxy := range cfg.HTTP.TrustedProxies {
		ipNet, err := parseProxy(proxy)
		if err != nil {
			return nil, err
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(options...), nil
}

// parseProxy accepts a CIDR or a single address.
func parseProxy(proxy string) (*net.IPNet, error) {
	proxy = strings.TrimSpace(proxy)
	if !strings.Contains(proxy, "/") {
		ip := net.ParseIP(proxy)
		if ip == nil {
			return nil, errors.Errorf("invalid trusted proxy %q", proxy)
		}
		bits := 128
		if ip.To4() != nil {
			ip = ip.To4()
			bits = 32
		}

		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}

	_, ipNet, err := net.ParseCIDR(proxy)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid trusted proxy %q", proxy)
	}

	return ipNet, nil
}
