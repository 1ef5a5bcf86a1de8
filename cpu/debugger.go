package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

type model struct {
	cpu    *Cpu
	offset uint16 // PC when Debug started; pageTable follows the current PC instead
	prevPC uint16
	error  error
}

// Init is the first function called. The Cpu handed to Debug already
// has its ROM loaded, so there's no initial command.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			if _, err := m.cpu.Execute(); err != nil {
				m.error = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page as a line, highlighting the
// byte at the current PC.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i, b := range m.cpu.Memory.Bytes[start : start+16] {
		if start+uint16(i) == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.Sign,
		m.cpu.Flags.Zero,
		m.cpu.Flags.AuxCarry,
		m.cpu.Flags.Parity,
		m.cpu.Flags.Carry,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
 PC: %04x (%04x)
 SP: %04x
  A: %02x
BC: %04x  DE: %04x  HL: %04x
IE: %v
S Z AC P C
`,
		m.cpu.PC, m.prevPC,
		m.cpu.SP,
		m.cpu.A,
		m.cpu.BC(), m.cpu.DE(), m.cpu.HL(),
		m.cpu.InterruptsEnabled,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	base := m.cpu.PC - (m.cpu.PC % 16)
	offsets := []int{
		0, 16, 32, 48, 64,
		int(base), int(base + 16), int(base + 32), int(base + 48), int(base + 64),
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(uint16(i)))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	window := m.cpu.fetchWindow(m.cpu.PC)
	instr, _ := Decode(window)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(instr),
	)
}

// Debug starts an interactive single-step TUI over an already-loaded
// CPU: space or j executes one instruction, q quits.
func Debug(c *Cpu) error {
	m, err := tea.NewProgram(model{cpu: c, offset: c.PC}).Run()
	if err != nil {
		return err
	}
	if x, ok := m.(model); ok && x.error != nil {
		return x.error
	}
	return nil
}
