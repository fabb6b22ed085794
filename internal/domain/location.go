package domain

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var statusJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// LocationStatus is a parsed status report. Absent fields stay nil.
type LocationStatus struct {
	Mode     *string `json:"mode"`
	Server   *string `json:"server"`
	Gametype *string `json:"gametype"`
}

// IsStatusLine reports whether a chat line looks like a structured status
// report.
func IsStatusLine(text string) bool {
	return strings.HasPrefix(text, "{")
}

func ParseLocationStatus(text string) (LocationStatus, error) {
	if !IsStatusLine(text) {
		return LocationStatus{}, ErrNotStatusLine
	}

	var status LocationStatus
	if err := statusJSON.UnmarshalFromString(text, &status); err != nil {
		return LocationStatus{}, fmt.Errorf("decode status line: %w", err)
	}

	return status, nil
}

func (s LocationStatus) ServerIs(value string) bool {
	return s.Server != nil && *s.Server == value
}

func (s LocationStatus) GametypeIs(value string) bool {
	return s.Gametype != nil && *s.Gametype == value
}

func (s LocationStatus) String() string {
	return fmt.Sprintf("mode=%s server=%s gametype=%s", optional(s.Mode), optional(s.Server), optional(s.Gametype))
}

func optional(value *string) string {
	if value == nil {
		return "<none>"
	}
	return *value
}
