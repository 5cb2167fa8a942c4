package card

import (
	"fmt"
	"strconv"
	"strings"
)

// Card represents a battle-ready trading card
type Card struct {
	Name       string  // Card name, "Unknown" when the source omitted it
	SmallImage *string // URL of the small card image, nil when absent
	LargeImage *string // URL of the large card image, nil when absent
	HP         int     // Hit points, never negative
}

// UnknownName is used for records that carry no usable name.
const UnknownName = "Unknown"

// Normalize converts a raw card record, as decoded from JSON, into a Card.
// It accepts any record shape and never fails: missing or malformed fields
// degrade to "Unknown", absent images, or 0 HP.
func Normalize(raw map[string]any) Card {
	c := Card{Name: UnknownName}

	if name, ok := raw["name"].(string); ok && name != "" {
		c.Name = name
	}

	// The images field is a nested object with optional small/large URLs.
	// A missing images object means both URLs are absent, not empty.
	if images, ok := raw["images"].(map[string]any); ok {
		if small, ok := images["small"].(string); ok {
			c.SmallImage = &small
		}
		if large, ok := images["large"].(string); ok {
			c.LargeImage = &large
		}
	}

	c.HP = parseHP(raw["hp"])

	return c
}

// parseHP extracts an integer from whatever the source put in the hp field.
// Sources disagree on the shape: a number, a plain digit string, or something
// like "120 HP". Non-digit characters are stripped before parsing.
func parseHP(value any) int {
	if value == nil {
		return 0
	}

	var digits strings.Builder
	for _, r := range fmt.Sprint(value) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	hp, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}

	return hp
}

// DeriveHP computes a stable hit-point value in [40, 190] from a card
// identifier. It is pure: the same identifier always yields the same HP,
// which keeps fallback battles reproducible.
func DeriveHP(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}

	return sum%151 + 40
}
