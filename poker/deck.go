package poker

// Deck describes a deck variant: which cards exist and how many there
// are. Descriptors are plain values shared freely.
type Deck struct {
	Name    string
	Cards   CardMask
	NumCard int
	Joker   bool
}

var (
	// StandardDeck is the 52-card deck.
	StandardDeck = Deck{Name: "standard", Cards: StandardMask, NumCard: NumCards}

	// ShortDeck drops deuces through fives, leaving 36 cards.
	ShortDeck = Deck{Name: "short", Cards: ShortDeckMask, NumCard: 36}

	// JokerDeck is the 53-card deck with the wild joker.
	JokerDeck = Deck{Name: "joker", Cards: StandardMask | CardMask(Joker), NumCard: 53, Joker: true}
)

// Remaining returns the deck's cards minus the given dead set.
func (d Deck) Remaining(dead CardMask) []Card {
	return (d.Cards &^ dead).Cards()
}
