package entity

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// newCode builds identifiers like USR-3F92AC01 from a fresh UUID.
func newCode(prefix string, n int) string {
	id := uuid.New()
	return prefix + "-" + strings.ToUpper(hex.EncodeToString(id[:]))[:n]
}
