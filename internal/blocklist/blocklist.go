// Package blocklist matches server addresses against the session server's
// deny-list of SHA-1 hashed host patterns.
package blocklist

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"
)

var ErrMalformedHash = errors.New("blocklist: malformed hash")

// List is an immutable set of hashed patterns.
type List struct {
	hashes map[string]struct{}
}

// Parse reads one lowercase hex SHA-1 per line. Blank lines are skipped.
func Parse(r io.Reader) (*List, error) {
	l := &List{hashes: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		h := strings.ToLower(strings.TrimSpace(sc.Text()))
		if h == "" {
			continue
		}
		if len(h) != sha1.Size*2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedHash, line, h)
		}
		if _, err := hex.DecodeString(h); err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedHash, line, h)
		}
		l.hashes[h] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("blocklist: read: %w", err)
	}
	return l, nil
}

// Hash is the list form of a pattern.
func Hash(pattern string) string {
	sum := sha1.Sum([]byte(pattern))
	return hex.EncodeToString(sum[:])
}

func (l *List) Len() int {
	return len(l.hashes)
}

// Contains reports whether pattern itself is on the list.
func (l *List) Contains(pattern string) bool {
	_, ok := l.hashes[Hash(pattern)]
	return ok
}

// IsBlocked checks an IPv4 address or a domain name.
func (l *List) IsBlocked(addr string) bool {
	if ip, err := netip.ParseAddr(addr); err == nil && ip.Is4() {
		return l.isAddrBlocked(ip)
	}
	return l.isDomainBlocked(addr)
}

// isAddrBlocked tries the exact address, then a.b.c.*, a.b.* and a.*.
func (l *List) isAddrBlocked(ip netip.Addr) bool {
	o := ip.As4()
	return l.Contains(ip.String()) ||
		l.Contains(fmt.Sprintf("%d.%d.%d.*", o[0], o[1], o[2])) ||
		l.Contains(fmt.Sprintf("%d.%d.*", o[0], o[1])) ||
		l.Contains(fmt.Sprintf("%d.*", o[0]))
}

// isDomainBlocked tries the exact name, then *.suffix for every suffix
// starting with the full name.
func (l *List) isDomainBlocked(domain string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	if l.Contains(domain) {
		return true
	}
	parts := strings.Split(domain, ".")
	for i := range parts {
		if l.Contains("*." + strings.Join(parts[i:], ".")) {
			return true
		}
	}
	return false
}
