package kernel

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"regexp"
	"time"
)

// referencePattern matches the generated form: prefix, UTC timestamp, random suffix.
var referencePattern = regexp.MustCompile(`^[A-Z]{3}-\d{14}-[0-9A-F]{4}$`)

// NewReference generates a human-readable, time-ordered reference number such
// as an order or return number: "ORD-20260829143207-7F3A". The timestamp
// component keeps references sortable by creation time; the suffix comes from
// crypto/rand. Collisions within the same second are still possible, so the
// persistence layer's uniqueness constraint remains authoritative and callers
// retry once on a uniqueness conflict.
func NewReference(prefix string, now time.Time) string {
	var raw [2]byte
	_, _ = rand.Read(raw[:])
	suffix := binary.BigEndian.Uint16(raw[:])

	return fmt.Sprintf("%s-%s-%04X", prefix, now.UTC().Format("20060102150405"), suffix)
}

// IsReference reports whether s has the shape produced by NewReference.
func IsReference(s string) bool {
	return referencePattern.MatchString(s)
}
