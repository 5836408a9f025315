package format

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	_  = iota
	KB = 1 << (10 * iota)
	MB
	GB
)

var units = []struct {
	name string
	size int64
}{
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
}

// FormatBytes formats b into human-readable units, avoiding .00 for whole numbers.
func FormatBytes(b int64) string {
	for _, u := range units {
		if b < u.size {
			continue
		}

		val := float64(b) / float64(u.size)
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f%s", val, u.name)
		}
		return fmt.Sprintf("%.2f%s", val, u.name)
	}
	return fmt.Sprintf("%dB", b)
}

// ParseBytes parses sizes such as "512", "512B", "64KB" or "1.5MB".
func ParseBytes(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	mul := int64(1)
	for _, u := range units {
		if strings.HasSuffix(s, u.name) {
			mul = u.size
			s = strings.TrimSuffix(s, u.name)
			break
		}
	}
	if mul == 1 {
		s = strings.TrimSuffix(s, "B")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(v * float64(mul)), nil
}
