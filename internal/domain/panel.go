package domain

import (
	"fmt"
	"strings"
)

// PanelID identifies an overlay surface on the start page.
type PanelID int

const (
	PanelClock PanelID = iota
	PanelSocial
	PanelWallets
	PanelLexicon
	PanelMusic
	PanelHelp
	PanelModalvate
	PanelPrices
	PanelGov
	PanelDocs
	PanelLens
	PanelGameB
	PanelIpfs
	PanelDefi
	PanelRefi
	PanelNetworks
	PanelPomodoro
	// PanelToolbar is the Ctrl+B overlay. It shares the panel container so
	// the escape routine can walk a single collection.
	PanelToolbar

	panelCount
)

var panelNames = [panelCount]string{
	PanelClock:     "clock",
	PanelSocial:    "social",
	PanelWallets:   "wallets",
	PanelLexicon:   "lexicon",
	PanelMusic:     "music",
	PanelHelp:      "help",
	PanelModalvate: "modalvate",
	PanelPrices:    "prices",
	PanelGov:       "gov",
	PanelDocs:      "docs",
	PanelLens:      "lens",
	PanelGameB:     "gameb",
	PanelIpfs:      "ipfs",
	PanelDefi:      "defi",
	PanelRefi:      "refi",
	PanelNetworks:  "networks",
	PanelPomodoro:  "pomodoro",
	PanelToolbar:   "toolbar",
}

var panelTitles = [panelCount]string{
	PanelClock:     "World Clock",
	PanelSocial:    "Social",
	PanelWallets:   "Wallets",
	PanelLexicon:   "Lexicon",
	PanelMusic:     "Music",
	PanelHelp:      "Help",
	PanelModalvate: "Modalvate",
	PanelPrices:    "Prices",
	PanelGov:       "Governance",
	PanelDocs:      "Docs",
	PanelLens:      "Lens",
	PanelGameB:     "GameB",
	PanelIpfs:      "IPFS",
	PanelDefi:      "DeFi",
	PanelRefi:      "ReFi",
	PanelNetworks:  "Networks",
	PanelPomodoro:  "Pomodoro Timer",
	PanelToolbar:   "Toolbar",
}

// AllPanels returns every panel identifier in declaration order.
func AllPanels() []PanelID {
	ids := make([]PanelID, 0, panelCount)
	for id := PanelID(0); id < panelCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether id is one of the declared panels.
func (id PanelID) Valid() bool {
	return id >= 0 && id < panelCount
}

// MustValid panics when id is not a declared panel. An unknown identifier can
// only come from a programming error.
func (id PanelID) MustValid() {
	if !id.Valid() {
		panic(fmt.Sprintf("domain: unknown panel id %d", int(id)))
	}
}

// String returns the lowercase panel name used in config and on the CLI.
func (id PanelID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("panel(%d)", int(id))
	}
	return panelNames[id]
}

// Title returns a human-readable title for the panel.
func (id PanelID) Title() string {
	if !id.Valid() {
		return "Unknown"
	}
	return panelTitles[id]
}

// ParsePanelID resolves a panel name, case-insensitively.
func ParsePanelID(s string) (PanelID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for id, n := range panelNames {
		if n == name {
			return PanelID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPanel, s)
}
