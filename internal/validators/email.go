package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that a registration email points at a domain
// that can actually receive mail, so appointment notifications do not bounce
// from day one. MX is the real signal; a plain A/AAAA record is accepted as
// the legacy fallback.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	host := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if host == "" || strings.Contains(host, " ") {
		return false
	}

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(host); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
