package cache

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/text/unicode/norm"
)

// Key derives the content address for a program. The program text is
// normalized to NFC first so visually identical manifests written with
// different Unicode compositions share a cache entry. The step limit is
// part of the key: the same program can expand differently under a
// tighter budget.
func Key(programTokens []string, maxSteps int) string {
	return KeyText(strings.Join(programTokens, " "), maxSteps)
}

// KeyText is Key for an already-joined program text.
func KeyText(program string, maxSteps int) string {
	canonical := norm.NFC.String(program)

	h := blake3.New()
	h.Write([]byte(canonical))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(maxSteps)))

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
