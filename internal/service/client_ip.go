package service

import (
	"net"
	"strings"
)

// ClientIP picks the submitter address: the first entry of the X-Forwarded-For
// chain when present, otherwise the host part of the direct connection address.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return host
}
