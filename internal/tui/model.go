// Package tui is the interactive table view: a bubbletea program that renders
// the game as events arrive and prompts the seated player for each decision.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
)

// eventMsg delivers a game event to the UI.
type eventMsg struct {
	ev game.Event
}

// promptMsg asks the UI for a betting decision; the answer goes back on
// reply.
type promptMsg struct {
	req   game.BetRequest
	reply chan game.BetAction
}

type playerLine struct {
	name     string
	bankRoll int
	folded   bool
}

// Model is the bubbletea model for one seat's view of the table.
type Model struct {
	name   string
	logger *log.Logger

	viewport viewport.Model
	input    textinput.Model

	lines     []string
	players   []playerLine
	dealer    string
	stage     string
	pot       int
	community []deck.Card
	hole      [2]deck.Card
	holeDealt bool

	pending *promptMsg
	errLine string

	width, height int
	gameOver      bool
	quitting      bool
}

// NewModel creates the model for the named player.
func NewModel(name string, logger *log.Logger) *Model {
	vp := viewport.New(80, 12)

	ti := textinput.New()
	ti.Placeholder = "R(aise) <amount>, C(all), Ch(eck), A(ll in), F(old)"
	ti.CharLimit = 32
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle

	return &Model{
		name:     name,
		logger:   logger.WithPrefix("tui"),
		viewport: vp,
		input:    ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-10, 3)
		m.refreshLog()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.answer(game.BetAction{Type: game.Fold})
			return m, tea.Quit

		case "enter":
			if m.pending == nil {
				return m, nil
			}
			action, err := ParseAction(m.input.Value())
			if err != nil {
				m.errLine = err.Error()
				return m, nil
			}
			m.errLine = ""
			m.input.Reset()
			m.answer(action)
			return m, nil

		default:
			if m.gameOver {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case eventMsg:
		m.apply(msg.ev)

	case promptMsg:
		m.pending = &msg
		m.errLine = ""
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// answer resolves the pending prompt, if any.
func (m *Model) answer(action game.BetAction) {
	if m.pending == nil {
		return
	}
	m.pending.reply <- action
	m.pending = nil
	m.input.Blur()
}

// apply folds a game event into the display state.
func (m *Model) apply(ev game.Event) {
	switch e := ev.(type) {
	case game.PlayerJoinedEvent:
		m.addLine(fmt.Sprintf("%s joins with %d", e.Player.Name, e.Player.BankRoll))

	case game.RoundStartEvent:
		m.players = m.players[:0]
		for _, p := range e.Players {
			m.players = append(m.players, playerLine{name: p.Name, bankRoll: p.BankRoll})
		}
		m.dealer = e.Dealer
		m.stage = ""
		m.pot = 0
		m.community = nil
		m.holeDealt = false
		m.addLine(fmt.Sprintf("--- Round %d, dealer %s ---", e.Round, e.Dealer))

	case game.HoleCardsEvent:
		m.hole = e.Cards
		m.holeDealt = true
		m.addLine("Your hole cards: " + renderCards(e.Cards[:]))

	case game.StageChangeEvent:
		m.stage = e.Stage.String()
		m.community = e.Community
		if len(e.Community) > 0 {
			m.addLine(fmt.Sprintf("%s: %s", titleCase(e.Stage.String()), renderCards(e.Community)))
		}

	case game.BetPlacedEvent:
		m.pot = e.Pot
		if p := m.player(e.Player); p != nil {
			p.bankRoll -= e.Paid
			if e.Action.Type == game.Fold {
				p.folded = true
			}
		}
		m.addLine(describeBet(e))

	case game.RoundResultEvent:
		for _, w := range e.Winners {
			if p := m.player(w.Name); p != nil {
				p.bankRoll += w.Amount
			}
			if w.Hand != nil {
				m.addLine(winnerStyle.Render(fmt.Sprintf("%s wins %d with %s (%s)",
					w.Name, w.Amount, w.Hand, renderCards(w.BestFive))))
			} else {
				m.addLine(winnerStyle.Render(fmt.Sprintf("%s wins %d", w.Name, w.Amount)))
			}
		}

	case game.PlayerEliminatedEvent:
		m.addLine(fmt.Sprintf("%s is eliminated", e.Name))

	case game.GameWinnerEvent:
		m.gameOver = true
		m.addLine(winnerStyle.Render(fmt.Sprintf("## %s wins the game with %d chips ##", e.Name, e.BankRoll)))
		m.addLine("Press any key to exit.")
	}
}

func (m *Model) player(name string) *playerLine {
	for i := range m.players {
		if m.players[i].name == name {
			return &m.players[i]
		}
	}
	return nil
}

func (m *Model) addLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.viewport.SetContent(logStyle.Render(strings.Join(m.lines, "\n")))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "HOLD'EM"
	if m.stage != "" {
		title += "  ·  " + m.stage
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("  " + potStyle.Render(fmt.Sprintf("pot %d", m.pot)))
	b.WriteString("\n\n")

	if len(m.players) > 0 {
		b.WriteString(m.renderPlayers())
		b.WriteString("\n")
	}
	if len(m.community) > 0 {
		b.WriteString("Board: " + renderCards(m.community) + "\n")
	}
	if m.holeDealt {
		b.WriteString("Hole:  " + renderCards(m.hole[:]) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.pending != nil {
		req := m.pending.req
		b.WriteString(promptStyle.Render(fmt.Sprintf(
			"Your turn: %d to call, min raise %d, stack %d, best hand %s",
			req.Call, req.CurrentBet+req.MinRaise, req.BankRoll, req.Best)))
		b.WriteString("\n" + m.input.View() + "\n")
		if m.errLine != "" {
			b.WriteString(errorStyle.Render(m.errLine) + "\n")
		}
	}

	return b.String()
}

func (m *Model) renderPlayers() string {
	parts := make([]string, 0, len(m.players))
	for _, p := range m.players {
		label := fmt.Sprintf("%s %d", p.name, p.bankRoll)
		switch {
		case p.folded:
			label = foldedStyle.Render(label)
		case p.name == m.dealer:
			label = dealerStyle.Render(label + " (D)")
		default:
			label = playerStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  |  "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// renderCards colours cards by suit.
func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit.IsRed() {
			parts[i] = redCardStyle.Render(c.String())
		} else {
			parts[i] = blackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// describeBet renders one bet line for the log.
func describeBet(e game.BetPlacedEvent) string {
	switch {
	case e.Forced == "small_blind":
		return fmt.Sprintf("%s posts small blind %d (pot %d)", e.Player, e.Paid, e.Pot)
	case e.Forced == "big_blind":
		return fmt.Sprintf("%s posts big blind %d (pot %d)", e.Player, e.Paid, e.Pot)
	case e.Action.Type == game.Fold:
		return fmt.Sprintf("%s folds", e.Player)
	case e.Action.Type == game.Check:
		return fmt.Sprintf("%s checks", e.Player)
	case e.Action.Type == game.Call:
		return fmt.Sprintf("%s calls %d (pot %d)", e.Player, e.Paid, e.Pot)
	case e.Action.Type == game.AllIn:
		return fmt.Sprintf("%s is all-in for %d (pot %d)", e.Player, e.Action.Amount, e.Pot)
	default:
		return fmt.Sprintf("%s raises to %d (pot %d)", e.Player, e.Action.Amount, e.Pot)
	}
}
