package nlu

import (
	"encoding/json"
	"time"

	"github.com/tavolahq/tavola/internal/domain"
)

// extractJSON returns the first balanced JSON object found in s, or nil.
// Providers are asked for JSON-only output but chatty models still wrap
// it in prose now and then.
func extractJSON(s string) []byte {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return []byte(s[start : i+1])
				}
			}
		}
	}
	return nil
}

// signals are the cross-cutting fields every operation's response may
// carry instead of its nominal payload.
type signals struct {
	Transfer bool   `json:"transfer"`
	Reason   string `json:"reason"`
	Redirect string `json:"redirect"`
}

// signalError maps signal fields to their error values, or nil.
func (s signals) signalError() error {
	if s.Transfer {
		return &TransferSignal{Reason: s.Reason}
	}
	switch domain.Intent(s.Redirect) {
	case domain.IntentTakeAway:
		return &RedirectSignal{Target: domain.IntentTakeAway}
	case domain.IntentDelivery:
		return &RedirectSignal{Target: domain.IntentDelivery}
	case domain.IntentReservation:
		return &RedirectSignal{Target: domain.IntentReservation}
	}
	return nil
}

// decodeResponse finds the JSON object in content and decodes it into v,
// returning any embedded signal as an error. A missing object reports
// false so callers can apply their own degraded fallback.
func decodeResponse(content string, v any) (found bool, err error) {
	raw := extractJSON(content)
	if raw == nil {
		return false, nil
	}

	var sig signals
	if json.Unmarshal(raw, &sig) == nil {
		if serr := sig.signalError(); serr != nil {
			return true, serr
		}
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, nil
	}
	return true, nil
}

// sanitizeBooking drops extracted values that do not match the slot
// contracts: people below one, dates and times that do not parse. A
// dropped field simply stays missing and gets asked for again.
func sanitizeBooking(s domain.BookingSlots) domain.BookingSlots {
	if s.People != nil && *s.People < 1 {
		s.People = nil
	}
	if s.Date != nil {
		if _, err := time.Parse(domain.SlotDateFormat, *s.Date); err != nil {
			s.Date = nil
		}
	}
	if s.Time != nil {
		if _, err := time.Parse(domain.SlotTimeFormat, *s.Time); err != nil {
			s.Time = nil
		}
	}
	if s.Name != nil && *s.Name == "" {
		s.Name = nil
	}
	return s
}
