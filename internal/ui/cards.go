package ui

import (
	"strings"

	"github.com/brisado/truco-server/internal/game/card"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/convert"
)

// renderCard draws one card face, red for hearts and diamonds.
func renderCard(info protocol.CardInfo) string {
	c := convert.InfoToCard(info)
	style := blackStyle
	if c.Suit == card.Heart || c.Suit == card.Diamond {
		style = redStyle
	}
	return style.Render(" " + c.String() + " ")
}

// renderHand draws a hand with 1-based pick indexes under each card.
func renderHand(cards []protocol.CardInfo) string {
	if len(cards) == 0 {
		return dimStyle.Render("(no cards)")
	}

	var faces, labels []string
	for i, info := range cards {
		faces = append(faces, renderCard(info))
		labels = append(labels, " ("+string(rune('1'+i))+") ")
	}
	return strings.Join(faces, " ") + "\n" + dimStyle.Render(strings.Join(labels, " "))
}
