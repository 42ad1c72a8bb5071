package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address carries a plausible
// domain and that the domain resolves. MX records are preferred;
// a bare A/AAAA record is accepted as a fallback since plenty of
// small providers run mail on the apex host.
func IsEmailDomainValid(email string) bool {
	domain, ok := splitDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

func splitDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return "", false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", false
	}

	return domain, true
}
