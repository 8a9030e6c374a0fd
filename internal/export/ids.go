package export

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// NewToken draws a 128-bit random identifier from r, or crypto/rand when r is nil.
func NewToken(r io.Reader) (uuid.UUID, error) {
	if r == nil {
		r = rand.Reader
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("generate token: %w", err)
	}
	return id, nil
}

// CertificateCode is the human readable certificate identifier: CERT- plus
// the first 8 hex digits of the token, upper-cased.
func CertificateCode(id uuid.UUID) string {
	return "CERT-" + strings.ToUpper(id.String()[:8])
}

// FileName builds "<prefix>-<token>.pdf".
func FileName(prefix string, id uuid.UUID) string {
	return prefix + "-" + id.String() + ".pdf"
}
