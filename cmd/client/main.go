package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brisado/truco-server/internal/logger"
	"github.com/brisado/truco-server/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3001", "server address")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("file logging disabled: %v", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)

	model := ui.NewModel(serverURL)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("client failed: %v", err)
	}
}
