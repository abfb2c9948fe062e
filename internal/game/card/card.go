package card

import (
	"math/rand"
)

// Suit is one of the four card suits.
type Suit int

// Rank is one of the ten face values used in Truco.
type Rank int

const (
	Spade Suit = iota
	Heart
	Club
	Diamond
)

// suitSymbols maps suits to their display symbols.
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// The Truco deck drops 8, 9 and 10: forty cards total.
const (
	Rank4 Rank = iota
	Rank5
	Rank6
	Rank7
	RankQ
	RankJ
	RankK
	RankA
	Rank2
	Rank3
)

// rankNames maps face values to their display strings.
var rankNames = map[Rank]string{
	Rank4: "4",
	Rank5: "5",
	Rank6: "6",
	Rank7: "7",
	RankQ: "Q",
	RankJ: "J",
	RankK: "K",
	RankA: "A",
	Rank2: "2",
	Rank3: "3",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// strength is the fixed Truco order, strongest first: 3 2 A K J Q 7 6 5 4.
// Suit never breaks ties.
var strength = map[Rank]int{
	Rank3: 10,
	Rank2: 9,
	RankA: 8,
	RankK: 7,
	RankJ: 6,
	RankQ: 5,
	Rank7: 4,
	Rank6: 3,
	Rank5: 2,
	Rank4: 1,
}

// Card is a single playing card. Identity is the (suit, rank) pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Compare returns >0 if a beats b, <0 if b beats a and 0 on equal rank.
// Equal rank cannot happen within one forty-unique-card deal; callers that
// see 0 must apply their own deterministic fallback.
func Compare(a, b Card) int {
	return strength[a.Rank] - strength[b.Rank]
}

// Deck is an ordered sequence of cards, consumed from the front by dealing.
type Deck []Card

// NewDeck builds the forty-card Truco deck in a fixed order.
func NewDeck() Deck {
	deck := make(Deck, 0, 40)
	for s := Spade; s <= Diamond; s++ {
		for r := Rank4; r <= Rank3; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck uniformly in place.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// NewShuffledDeck builds and shuffles a fresh deck.
func NewShuffledDeck() Deck {
	d := NewDeck()
	d.Shuffle()
	return d
}

// Draw removes and returns the first n cards.
func (d *Deck) Draw(n int) []Card {
	cards := (*d)[:n:n]
	*d = (*d)[n:]
	return cards
}

// Remove deletes the first card equal to c from hand, reporting whether it
// was present.
func Remove(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h.Suit == c.Suit && h.Rank == c.Rank {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}
