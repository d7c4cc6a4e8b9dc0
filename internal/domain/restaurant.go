package domain

import (
	"fmt"
	"strings"
)

// Restaurant is the static business metadata loaded once at startup and
// snapshotted read-only into every call. The dialogue engine never writes
// to it; a failed load is replaced by the zero value and the call goes on.
type Restaurant struct {
	Name     string            `json:"name" yaml:"name"`
	Phone    string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address  string            `json:"address,omitempty" yaml:"address,omitempty"`
	Hours    map[string]string `json:"hours,omitempty" yaml:"hours,omitempty"` // weekday name → "12:00-14:30, 19:00-23:00" or "closed"
	Services Services          `json:"services" yaml:"services"`
	Menu     []MenuSection     `json:"menu,omitempty" yaml:"menu,omitempty"`
}

// Services flags which fulfillment flows the business offers.
type Services struct {
	Reservations bool `json:"reservations" yaml:"reservations"`
	TakeAway     bool `json:"takeAway" yaml:"takeAway"`
	Delivery     bool `json:"delivery" yaml:"delivery"`
}

// MenuSection groups menu items under a heading.
type MenuSection struct {
	Name  string     `json:"name" yaml:"name"`
	Items []MenuItem `json:"items" yaml:"items"`
}

// MenuItem is a single dish with an optional price.
type MenuItem struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

// Describe renders the metadata as plain text for grounding NLU answers.
func (r Restaurant) Describe() string {
	var b strings.Builder
	if r.Name != "" {
		b.WriteString("Name: " + r.Name + "\n")
	}
	if r.Phone != "" {
		b.WriteString("Phone: " + r.Phone + "\n")
	}
	if r.Address != "" {
		b.WriteString("Address: " + r.Address + "\n")
	}
	if len(r.Hours) > 0 {
		b.WriteString("Opening hours:\n")
		for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
			if h, ok := r.Hours[day]; ok {
				b.WriteString("  " + day + ": " + h + "\n")
			}
		}
	}
	b.WriteString("Reservations: " + yesNo(r.Services.Reservations) + "\n")
	b.WriteString("Take-away: " + yesNo(r.Services.TakeAway) + "\n")
	b.WriteString("Delivery: " + yesNo(r.Services.Delivery) + "\n")
	for _, sec := range r.Menu {
		b.WriteString(sec.Name + ":\n")
		for _, it := range sec.Items {
			b.WriteString("  " + it.Name)
			if it.Price > 0 {
				fmt.Fprintf(&b, " (%.2f)", it.Price)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
