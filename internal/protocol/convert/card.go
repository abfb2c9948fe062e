// Package convert maps domain cards to and from their wire form.
package convert

import (
	"github.com/brisado/truco-server/internal/game/card"
	"github.com/brisado/truco-server/internal/protocol"
)

// CardToInfo converts a domain card to its wire form.
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit: int(c.Suit),
		Rank: int(c.Rank),
	}
}

// InfoToCard converts a wire card back to the domain type.
func InfoToCard(info protocol.CardInfo) card.Card {
	return card.Card{
		Suit: card.Suit(info.Suit),
		Rank: card.Rank(info.Rank),
	}
}

// CardsToInfos converts a slice of domain cards.
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfosToCards converts a slice of wire cards.
func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		cards[i] = InfoToCard(info)
	}
	return cards
}
