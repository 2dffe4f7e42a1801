// README: Client identity derivation; hashes the originating address for history scoping.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// Hash derives a stable, one-way identifier from the request's network
// origin. The first entry of a forwarded-address chain wins, then the
// direct transport address, then a literal sentinel. The raw address is
// never stored; history rows carry only the digest.
func Hash(r *http.Request) string {
	addr := "unknown"
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		addr = strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	} else if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		addr = host
	}
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:])
}
