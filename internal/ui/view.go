package ui

import (
	"fmt"
	"strings"
)

func (m *Model) View() string {
	var b strings.Builder

	switch m.phase {
	case PhaseConnecting:
		b.WriteString(titleStyle("Truco"))
		b.WriteString("\n\n" + m.spinner.View() + " connecting to server...")

	case PhaseLobby:
		b.WriteString(m.viewLobby())

	case PhaseMatching:
		b.WriteString(titleStyle("Truco"))
		b.WriteString("\n\n" + m.spinner.View() + " " + m.statusLine)
		b.WriteString(promptStyle.Render("\nesc to quit"))

	case PhasePlaying:
		b.WriteString(m.viewGame())

	case PhaseMatchOver:
		b.WriteString(m.viewMatchOver())

	case PhaseLeaderboard:
		b.WriteString(m.viewLeaderboard())

	case PhaseStats:
		b.WriteString(m.viewStats())
	}

	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.errText))
	}

	return docStyle.Render(b.String())
}

func (m *Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(titleStyle("Truco"))
	b.WriteString(fmt.Sprintf("\n\nwelcome, %s", m.playerName))
	if m.latency > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%dms)", m.latency)))
	}
	if m.onlineCount > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d online", m.onlineCount)))
	}
	if m.statusLine != "" {
		b.WriteString("\n" + m.statusLine)
	}
	b.WriteString(promptStyle.Render("\n(enter) play   (l) leaderboard   (s) stats   (o) online   (q) quit"))
	return b.String()
}

func (m *Model) viewGame() string {
	var b strings.Builder

	myScore := m.game.scores[m.playerID]
	oppScore := 0
	for id, s := range m.game.scores {
		if id != m.playerID {
			oppScore = s
		}
	}
	myWins := m.game.roundWins[m.playerID]
	oppWins := 0
	for id, w := range m.game.roundWins {
		if id != m.playerID {
			oppWins = w
		}
	}

	header := fmt.Sprintf("you %d x %d opponent   tricks %d-%d   ", myScore, oppScore, myWins, oppWins)
	header += stakeStyle.Render(fmt.Sprintf("worth %d", m.game.handValue))
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	// Table.
	if len(m.game.table) == 0 {
		b.WriteString(dimStyle.Render("table empty"))
	} else {
		var cells []string
		for _, tc := range m.game.table {
			cells = append(cells, fmt.Sprintf("%s %s", m.nameFor(tc.PlayerID), renderCard(tc.Card)))
		}
		b.WriteString(strings.Join(cells, "   "))
	}
	b.WriteString("\n\n")

	b.WriteString(renderHand(m.game.hand))
	b.WriteString("\n\n")

	if m.isMyTurn() {
		b.WriteString(turnStyle.Render("your turn"))
	} else {
		b.WriteString(dimStyle.Render("opponent's turn"))
	}

	if m.statusLine != "" {
		b.WriteString("\n" + m.statusLine)
	}

	if m.game.trucoPending && m.game.trucoBy != m.playerID {
		b.WriteString("\n" + stakeStyle.Render(
			fmt.Sprintf("truco for %d! (a)ccept  (r)aise  (f)lee", m.game.trucoValue)))
	} else {
		b.WriteString(promptStyle.Render("\n(1-3) play card   (t) truco   (esc) quit"))
	}

	return b.String()
}

func (m *Model) viewMatchOver() string {
	var b strings.Builder
	b.WriteString(titleStyle("Match over"))
	if m.matchOver != nil {
		if m.matchOver.WinnerID == m.playerID {
			b.WriteString("\n\n🏆 you won!")
		} else {
			b.WriteString("\n\nyou lost.")
		}
		b.WriteString(fmt.Sprintf("\nfinal score: you %d x %d opponent",
			m.matchOver.Scores[m.playerID], opponentScore(m.matchOver.Scores, m.playerID)))
	}
	b.WriteString(promptStyle.Render("\nany key for the lobby"))
	return b.String()
}

func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(titleStyle("Leaderboard"))
	if m.leaderboard == nil || len(m.leaderboard.Entries) == 0 {
		b.WriteString("\n\nnobody here yet")
	} else {
		b.WriteString("\n")
		for _, e := range m.leaderboard.Entries {
			b.WriteString(fmt.Sprintf("\n%2d. %-20s %3d wins  %5.1f%%", e.Rank, e.PlayerName, e.Wins, e.WinRate))
		}
	}
	b.WriteString(promptStyle.Render("\nany key for the lobby"))
	return b.String()
}

func (m *Model) viewStats() string {
	var b strings.Builder
	b.WriteString(titleStyle("Your record"))
	if m.stats == nil || m.stats.Matches == 0 {
		b.WriteString("\n\nno matches yet")
	} else {
		s := m.stats
		b.WriteString(fmt.Sprintf("\n\nmatches: %d   wins: %d   losses: %d   (%.1f%%)",
			s.Matches, s.Wins, s.Losses, s.WinRate))
		b.WriteString(fmt.Sprintf("\npoints for/against: %d/%d", s.PointsFor, s.PointsAgainst))
		b.WriteString(fmt.Sprintf("\nstreak: %d   best: %d", s.CurrentStreak, s.MaxWinStreak))
		if s.Rank > 0 {
			b.WriteString(fmt.Sprintf("\nrank: #%d", s.Rank))
		}
	}
	b.WriteString(promptStyle.Render("\nany key for the lobby"))
	return b.String()
}

func opponentScore(scores map[string]int, selfID string) int {
	for id, s := range scores {
		if id != selfID {
			return s
		}
	}
	return 0
}
