package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// CardCategory defines the type of a card using a typed enum.
type CardCategory int

const (
	CategorySuspect CardCategory = iota
	CategoryWeapon
	CategoryRoom
)

// Categories lists every category in display order.
var Categories = []CardCategory{CategorySuspect, CategoryWeapon, CategoryRoom}

func (cc CardCategory) String() string {
	return []string{"suspects", "weapons", "rooms"}[cc]
}

// Singular returns the singular label, e.g. "suspect".
func (cc CardCategory) Singular() string {
	return []string{"suspect", "weapon", "room"}[cc]
}

// GameConfig holds the static card definitions for a game of Cluedo.
type GameConfig struct {
	Suspects   []string                `json:"suspects" yaml:"suspects"`
	Weapons    []string                `json:"weapons" yaml:"weapons"`
	Rooms      []string                `json:"rooms" yaml:"rooms"`
	AllCards   []string                `json:"-" yaml:"-"`
	CardToType map[string]CardCategory `json:"-" yaml:"-"`
}

// Default returns the classic deck: six suspects, six weapons and nine rooms.
func Default() *GameConfig {
	cfg, err := New(
		[]string{"green", "mustard", "peacock", "plum", "scarlet", "white"},
		[]string{"candlestick", "dagger", "leadpipe", "revolver", "rope", "wrench"},
		[]string{"ballroom", "billiard", "conservatory", "dining", "hall", "kitchen", "library", "lounge", "study"},
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

// New builds and validates a deck from the three card lists.
func New(suspects, weapons, rooms []string) (*GameConfig, error) {
	cfg := &GameConfig{
		Suspects: append([]string(nil), suspects...),
		Weapons:  append([]string(nil), weapons...),
		Rooms:    append([]string(nil), rooms...),
	}
	if err := cfg.prepare(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads, parses, and prepares a deck definition from a JSON file.
func Load(path string) (*GameConfig, error) {
	var cfg GameConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.prepare(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// prepare sorts the card lists and registers each card with its category.
// A card name may belong to only one category.
func (c *GameConfig) prepare() error {
	c.CardToType = make(map[string]CardCategory)
	c.AllCards = nil
	for _, cat := range Categories {
		list := c.CardListForCategory(cat)
		if len(list) == 0 {
			return &DeckError{Msg: fmt.Sprintf("no %s defined", cat)}
		}
		sort.Strings(list)
		for _, card := range list {
			if card == "" || strings.ContainsAny(card, " \t\n") {
				return &DeckError{Msg: fmt.Sprintf("invalid card name %q in %s", card, cat)}
			}
			if prev, dup := c.CardToType[card]; dup {
				return &DeckError{Msg: fmt.Sprintf("card %q listed in both %s and %s", card, prev, cat)}
			}
			c.CardToType[card] = cat
			c.AllCards = append(c.AllCards, card)
		}
	}
	return nil
}

// DeckError reports an invalid deck definition.
type DeckError struct {
	Msg string
}

func (e *DeckError) Error() string { return "invalid deck: " + e.Msg }

// DeepCopy creates a new GameConfig with all slices copied to prevent shared state.
func (c *GameConfig) DeepCopy() *GameConfig {
	newCfg := &GameConfig{
		CardToType: make(map[string]CardCategory, len(c.CardToType)),
	}
	newCfg.Suspects = append([]string(nil), c.Suspects...)
	newCfg.Weapons = append([]string(nil), c.Weapons...)
	newCfg.Rooms = append([]string(nil), c.Rooms...)
	newCfg.AllCards = append([]string(nil), c.AllCards...)
	for k, v := range c.CardToType {
		newCfg.CardToType[k] = v
	}
	return newCfg
}

// CardListForCategory is a helper to get the correct card list from the config.
func (c *GameConfig) CardListForCategory(cat CardCategory) []string {
	switch cat {
	case CategorySuspect:
		return c.Suspects
	case CategoryWeapon:
		return c.Weapons
	case CategoryRoom:
		return c.Rooms
	default:
		return nil
	}
}

// Category classifies a card. The second result is false for unknown cards.
func (c *GameConfig) Category(card string) (CardCategory, bool) {
	cat, ok := c.CardToType[card]
	return cat, ok
}
