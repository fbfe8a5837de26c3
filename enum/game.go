// Package enum runs exhaustive, Monte-Carlo, and quasi-Monte-Carlo
// equity rollouts across the supported poker variants, aggregating
// win/tie/lose counters, pot equity, and share histograms.
package enum

import (
	"fmt"

	"github.com/lox/pokereval/poker"
)

// Game identifies a poker variant.
type Game uint8

const (
	Holdem Game = iota
	Holdem8
	Omaha
	Omaha5
	Omaha6
	Omaha8
	Omaha85
	Stud7
	Stud78
	Stud7nsq
	Razz
	Draw5
	Draw58
	Draw5nsq
	Lowball
	Lowball27
	ShortDeck

	numGames
)

var gameCodes = map[string]Game{
	"holdem":    Holdem,
	"holdem8":   Holdem8,
	"omaha":     Omaha,
	"omaha5":    Omaha5,
	"omaha6":    Omaha6,
	"omaha8":    Omaha8,
	"omaha85":   Omaha85,
	"stud7":     Stud7,
	"stud78":    Stud78,
	"stud7nsq":  Stud7nsq,
	"razz":      Razz,
	"draw5":     Draw5,
	"draw58":    Draw58,
	"draw5nsq":  Draw5nsq,
	"lowball":   Lowball,
	"lowball27": Lowball27,
	"shortdeck": ShortDeck,
}

// ParseGame resolves a textual game code like "holdem8".
func ParseGame(code string) (Game, error) {
	g, ok := gameCodes[code]
	if !ok {
		return 0, fmt.Errorf("%w: unknown game %q", ErrConfig, code)
	}
	return g, nil
}

// String returns the game's code.
func (g Game) String() string {
	for code, game := range gameCodes {
		if game == g {
			return code
		}
	}
	return "unknown"
}

// Params describes the shape of a game variant.
type Params struct {
	Game      Game
	Name      string
	MinPocket int
	MaxPocket int
	MaxBoard  int
	HasHiPot  bool
	HasLoPot  bool
	// TargetHand is the per-player hand size for games without a
	// shared board (stud and draw); 0 for board games.
	TargetHand int
	Deck       poker.Deck
}

var gameParams = [numGames]Params{
	Holdem:    {Game: Holdem, Name: "Holdem Hi", MinPocket: 2, MaxPocket: 2, MaxBoard: 5, HasHiPot: true, Deck: poker.StandardDeck},
	Holdem8:   {Game: Holdem8, Name: "Holdem Hi/Low 8-or-better", MinPocket: 2, MaxPocket: 2, MaxBoard: 5, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Omaha:     {Game: Omaha, Name: "Omaha Hi", MinPocket: 4, MaxPocket: 4, MaxBoard: 5, HasHiPot: true, Deck: poker.StandardDeck},
	Omaha5:    {Game: Omaha5, Name: "Omaha 5-card Hi", MinPocket: 5, MaxPocket: 5, MaxBoard: 5, HasHiPot: true, Deck: poker.StandardDeck},
	Omaha6:    {Game: Omaha6, Name: "Omaha 6-card Hi", MinPocket: 6, MaxPocket: 6, MaxBoard: 5, HasHiPot: true, Deck: poker.StandardDeck},
	Omaha8:    {Game: Omaha8, Name: "Omaha Hi/Low 8-or-better", MinPocket: 4, MaxPocket: 4, MaxBoard: 5, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Omaha85:   {Game: Omaha85, Name: "Omaha 5-card Hi/Low 8-or-better", MinPocket: 5, MaxPocket: 5, MaxBoard: 5, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Stud7:     {Game: Stud7, Name: "7-card Stud Hi", MinPocket: 1, MaxPocket: 7, TargetHand: 7, HasHiPot: true, Deck: poker.StandardDeck},
	Stud78:    {Game: Stud78, Name: "7-card Stud Hi/Low 8-or-better", MinPocket: 1, MaxPocket: 7, TargetHand: 7, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Stud7nsq:  {Game: Stud7nsq, Name: "7-card Stud Hi/Low no qualifier", MinPocket: 1, MaxPocket: 7, TargetHand: 7, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Razz:      {Game: Razz, Name: "Razz", MinPocket: 1, MaxPocket: 7, TargetHand: 7, HasLoPot: true, Deck: poker.StandardDeck},
	Draw5:     {Game: Draw5, Name: "5-card Draw Hi", MinPocket: 0, MaxPocket: 5, TargetHand: 5, HasHiPot: true, Deck: poker.StandardDeck},
	Draw58:    {Game: Draw58, Name: "5-card Draw Hi/Low 8-or-better", MinPocket: 0, MaxPocket: 5, TargetHand: 5, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Draw5nsq:  {Game: Draw5nsq, Name: "5-card Draw Hi/Low no qualifier", MinPocket: 0, MaxPocket: 5, TargetHand: 5, HasHiPot: true, HasLoPot: true, Deck: poker.StandardDeck},
	Lowball:   {Game: Lowball, Name: "A-5 Lowball", MinPocket: 0, MaxPocket: 5, TargetHand: 5, HasLoPot: true, Deck: poker.StandardDeck},
	Lowball27: {Game: Lowball27, Name: "2-7 Lowball", MinPocket: 0, MaxPocket: 5, TargetHand: 5, HasLoPot: true, Deck: poker.StandardDeck},
	ShortDeck: {Game: ShortDeck, Name: "Short-Deck Holdem", MinPocket: 2, MaxPocket: 2, MaxBoard: 5, HasHiPot: true, Deck: poker.ShortDeck},
}

// Params returns the parameter block for the game.
func (g Game) Params() Params {
	if int(g) >= int(numGames) {
		return Params{}
	}
	return gameParams[g]
}

// HasBoard reports whether the variant deals shared community cards.
func (g Game) HasBoard() bool { return g.Params().MaxBoard > 0 }
