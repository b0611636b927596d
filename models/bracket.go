package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidBracketType = errors.New("invalid bracket type")
	ErrInvalidBracketSlot = errors.New("invalid bracket slot")
)

// BracketType selects the elimination tree a match belongs to.
type BracketType string

const (
	BracketWinners BracketType = "winners"
	BracketLosers  BracketType = "losers"
)

func ParseBracketType(s string) (BracketType, error) {
	switch bt := BracketType(strings.ToLower(strings.TrimSpace(s))); bt {
	case BracketWinners, BracketLosers:
		return bt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBracketType, s)
}

// BracketSlot names the places a match decides, e.g. {1, 2} for the final and
// {3, 4} for the third-place match.
type BracketSlot struct {
	LowPlace  int `json:"low_place"`
	HighPlace int `json:"high_place"`
}

// ParseBracketSlot converts a legacy "low-high" label.
func ParseBracketSlot(label string) (BracketSlot, error) {
	low, high, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok {
		return BracketSlot{}, fmt.Errorf("%w: %q", ErrInvalidBracketSlot, label)
	}
	lowPlace, err := strconv.Atoi(strings.TrimSpace(low))
	if err != nil {
		return BracketSlot{}, fmt.Errorf("%w: %q: %v", ErrInvalidBracketSlot, label, err)
	}
	highPlace, err := strconv.Atoi(strings.TrimSpace(high))
	if err != nil {
		return BracketSlot{}, fmt.Errorf("%w: %q: %v", ErrInvalidBracketSlot, label, err)
	}
	slot := BracketSlot{LowPlace: lowPlace, HighPlace: highPlace}
	if err := slot.Validate(); err != nil {
		return BracketSlot{}, err
	}
	return slot, nil
}

func (s BracketSlot) Validate() error {
	if s.LowPlace < 1 || s.HighPlace < s.LowPlace {
		return fmt.Errorf("%w: places %d-%d", ErrInvalidBracketSlot, s.LowPlace, s.HighPlace)
	}
	return nil
}

// IsPlacementMatch reports whether the slot decides places below the final.
func (s BracketSlot) IsPlacementMatch() bool {
	return s.HighPlace > 2
}

func (s BracketSlot) String() string {
	return fmt.Sprintf("%d-%d", s.LowPlace, s.HighPlace)
}

// UnmarshalJSON accepts both the object form and the legacy "3-4" string.
func (s *BracketSlot) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		slot, err := ParseBracketSlot(label)
		if err != nil {
			return err
		}
		*s = slot
		return nil
	}

	type plain BracketSlot
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBracketSlot, err)
	}
	if err := BracketSlot(p).Validate(); err != nil {
		return err
	}
	*s = BracketSlot(p)
	return nil
}
