package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck_FortyDistinctCards(t *testing.T) {
	deck := NewDeck()
	assert.Len(t, deck, 40)

	seen := make(map[Card]bool, 40)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestShuffle_KeepsAllCards(t *testing.T) {
	deck := NewShuffledDeck()
	assert.Len(t, deck, 40)

	seen := make(map[Card]bool, 40)
	for _, c := range deck {
		seen[c] = true
	}
	assert.Len(t, seen, 40)
}

func TestDraw_ConsumesFromFront(t *testing.T) {
	deck := NewDeck()
	first := deck[0]

	drawn := deck.Draw(3)
	assert.Len(t, drawn, 3)
	assert.Equal(t, first, drawn[0])
	assert.Len(t, deck, 37)
}

func TestCompare_StrengthLadder(t *testing.T) {
	// Weakest to strongest per Truco rules.
	ladder := []Rank{Rank4, Rank5, Rank6, Rank7, RankQ, RankJ, RankK, RankA, Rank2, Rank3}

	for i := range ladder {
		for j := range ladder {
			a := Card{Suit: Spade, Rank: ladder[i]}
			b := Card{Suit: Heart, Rank: ladder[j]}
			got := Compare(a, b)
			switch {
			case i < j:
				assert.Negative(t, got, "%s should lose to %s", a, b)
			case i > j:
				assert.Positive(t, got, "%s should beat %s", a, b)
			default:
				assert.Zero(t, got)
			}
		}
	}
}

func TestCompare_SuitNeverBreaksTies(t *testing.T) {
	a := Card{Suit: Spade, Rank: RankK}
	b := Card{Suit: Diamond, Rank: RankK}
	assert.Zero(t, Compare(a, b))
}

func TestRemove(t *testing.T) {
	hand := []Card{
		{Suit: Spade, Rank: Rank3},
		{Suit: Heart, Rank: Rank4},
		{Suit: Club, Rank: RankQ},
	}

	out, ok := Remove(hand, Card{Suit: Heart, Rank: Rank4})
	assert.True(t, ok)
	assert.Len(t, out, 2)

	out, ok = Remove(out, Card{Suit: Heart, Rank: Rank4})
	assert.False(t, ok)
	assert.Len(t, out, 2)
}

func TestString(t *testing.T) {
	assert.Equal(t, "♠3", Card{Suit: Spade, Rank: Rank3}.String())
	assert.Equal(t, "♦Q", Card{Suit: Diamond, Rank: RankQ}.String())
}
