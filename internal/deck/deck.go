package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrInsufficientCards is returned when a deal asks for more cards than
// remain. In normal play the deck can never run dry over one hand, so
// hitting this indicates a defect in the caller, not bad input.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck is an ordered 52-card deck consumed by dealing. Cards removed by
// Deal never reappear until the deck is rebuilt, which is what structurally
// guarantees no duplicate card is ever held by two players or the board.
type Deck struct {
	cards [52]Card
	next  int
}

// New creates a full deck shuffled with the provided RNG. The RNG is
// required so that every shuffle is reproducible from a seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.shuffle(rng)
	return d
}

// shuffle randomizes the card order using Fisher-Yates
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
