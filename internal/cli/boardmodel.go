package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Focus areas, in tab order.
const (
	focusInput = iota
	focusAddButton
	focusAvailable
	focusCompleted
	focusCount
)

// focusInputMsg returns focus to the text field after a task was added.
type focusInputMsg struct{}

func refocusInput() tea.Msg {
	return focusInputMsg{}
}

// Style definitions.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	listPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeListPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	zoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	hoveredZoneStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("46")).
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("46"))

	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	draggedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Strikethrough(true)

	addButtonStyle         = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	focusedAddButtonStyle  = addButtonStyle.Bold(true).Background(lipgloss.Color("69"))
	disabledAddButtonStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("237")).Foreground(lipgloss.Color("243"))

	boardHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// boardModel is the bubbletea front-end of a TaskBoard. It translates keys
// into the board's UI events and renders snapshots; it holds no task data
// of its own.
type boardModel struct {
	board *core.TaskBoard
	input textinput.Model

	focus  int
	cursor map[models.ListID]int

	// payload is what the terminal "platform" carries for the active drag.
	// It outlives a Reload, unlike the board's in-memory reference.
	payload models.TransferToken

	status string
	width  int
	height int
}

func newBoardModel(board *core.TaskBoard) boardModel {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Prompt = "> "
	ti.SetValue(board.Snapshot().Input)
	ti.Focus()

	return boardModel{
		board:  board,
		input:  ti,
		focus:  focusInput,
		cursor: map[models.ListID]int{models.ListAvailable: 0, models.ListCompleted: 0},
	}
}

func (m boardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case focusInputMsg:
		return m.setFocus(focusInput)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.board.Reload()
			m.status = "reloaded: drag reference dropped"
			return m, nil
		}
		if m.dragging() {
			return m.updateDragging(msg)
		}
		switch msg.String() {
		case "tab":
			return m.cycleFocus(1)
		case "shift+tab":
			return m.cycleFocus(-1)
		}
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusAddButton:
			return m.updateAddButton(msg)
		default:
			return m.updatePanel(msg)
		}
	}

	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.board.SetInput(m.input.Value())
	return m, cmd
}

func (m boardModel) updateAddButton(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return m.submit()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// submit adds a task from the input. Focus returns to the text field only
// after the updated lists have been rendered.
func (m boardModel) submit() (tea.Model, tea.Cmd) {
	task, refocus := m.board.SubmitInput()
	if !refocus {
		return m, nil
	}
	m.input.SetValue("")
	m.status = fmt.Sprintf("added %q", task.Text)
	return m, refocusInput
}

func (m boardModel) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.focusedList()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(list, -1)
	case "down", "j":
		m.moveCursor(list, 1)
	case "d", "x", "delete":
		if task, ok := m.taskUnderCursor(list); ok {
			if m.board.DeleteTask(task.ID, list) {
				m.status = fmt.Sprintf("deleted %q", task.Text)
			}
			m.clampCursors()
		}
	case " ":
		if task, ok := m.taskUnderCursor(list); ok {
			if payload, started := m.board.DragStart(task.ID); started {
				m.payload = payload
				m.status = fmt.Sprintf("dragging %q", task.Text)
				m.syncHover()
			}
		}
	}
	return m, nil
}

func (m boardModel) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(m.focusedList(), -1)
		m.syncHover()
	case "down", "j":
		m.moveCursor(m.focusedList(), 1)
		m.syncHover()
	case "left", "h", "right", "l":
		if m.board.Store().HasList(models.ListCompleted) {
			if m.focus == focusAvailable {
				m.focus = focusCompleted
			} else {
				m.focus = focusAvailable
			}
			m.syncHover()
		}
	case " ", "enter":
		if m.board.Drop(m.targetUnderCursor(), m.payload) {
			m.status = "dropped"
		} else {
			m.status = "drop had no effect"
		}
		m.board.DragEnd()
		m.payload = models.TransferToken{}
		m.clampCursors()
	case "esc":
		m.board.DragEnd()
		m.payload = models.TransferToken{}
		m.status = "drag cancelled"
	}
	return m, nil
}

// cycleFocus moves focus by step in tab order, skipping the completed
// panel when the variant has none.
func (m boardModel) cycleFocus(step int) (tea.Model, tea.Cmd) {
	focus := (m.focus + step + focusCount) % focusCount
	if focus == focusCompleted && !m.board.Store().HasList(models.ListCompleted) {
		focus = (focus + step + focusCount) % focusCount
	}
	return m.setFocus(focus)
}

func (m boardModel) setFocus(focus int) (tea.Model, tea.Cmd) {
	m.focus = focus
	if focus == focusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

// dragging reports whether a drag is in progress from the terminal's point
// of view. The payload survives a Reload, so the drag continues even when
// the board lost its in-memory reference.
func (m boardModel) dragging() bool {
	return !m.payload.IsZero()
}

func (m boardModel) focusedList() models.ListID {
	if m.focus == focusCompleted {
		return models.ListCompleted
	}
	return models.ListAvailable
}

// zoneRows is 1 when each panel starts with its drop zone row.
func (m boardModel) zoneRows() int {
	if m.board.Store().Variant() == models.VariantTwoZone {
		return 1
	}
	return 0
}

func (m boardModel) rowCount(list models.ListID) int {
	return m.board.Store().Len(list) + m.zoneRows()
}

func (m boardModel) moveCursor(list models.ListID, delta int) {
	n := m.rowCount(list)
	if n == 0 {
		m.cursor[list] = 0
		return
	}
	c := m.cursor[list] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.cursor[list] = c
}

func (m boardModel) clampCursors() {
	for _, list := range m.board.Store().Variant().Lists() {
		m.moveCursor(list, 0)
	}
}

func (m boardModel) taskUnderCursor(list models.ListID) (models.Task, bool) {
	idx := m.cursor[list] - m.zoneRows()
	tasks := m.board.Store().List(list)
	if idx < 0 || idx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[idx], true
}

func zoneFor(list models.ListID) models.ZoneID {
	if list == models.ListCompleted {
		return models.ZoneCompleted
	}
	return models.ZoneAvailable
}

func (m boardModel) targetUnderCursor() core.DropTarget {
	list := m.focusedList()
	if m.zoneRows() == 1 && m.cursor[list] == 0 {
		return core.ZoneTarget(zoneFor(list))
	}
	if task, ok := m.taskUnderCursor(list); ok {
		return core.RowTarget(task.ID, list)
	}
	return core.DropTarget{}
}

// syncHover raises drag-enter for the zone under the cursor before
// drag-leave for the one it replaces, matching pointer event order.
func (m boardModel) syncHover() {
	prev := m.board.HoveredZone()
	next := m.targetUnderCursor().Zone
	if next == prev {
		return
	}
	if next != "" {
		m.board.DragEnter(next)
	}
	if prev != "" {
		m.board.DragLeave(prev)
	}
}

func (m boardModel) View() string {
	snap := m.board.Snapshot()

	title := boardTitleStyle.Render(" TaskBoard ")

	button := disabledAddButtonStyle.Render("Add")
	if m.board.CanAdd() {
		button = addButtonStyle.Render("Add")
		if m.focus == focusAddButton {
			button = focusedAddButtonStyle.Render("Add")
		}
	}
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button)

	panelWidth := 36
	if m.width > 0 {
		cols := len(snap.Variant.Lists())
		if w := (m.width-2)/cols - 4; w > 20 {
			panelWidth = w
		}
	}

	panels := []string{m.renderPanel(models.ListAvailable, "Available", snap.Available, panelWidth)}
	if snap.Variant == models.VariantTwoZone {
		panels = append(panels, m.renderPanel(models.ListCompleted, "Completed", snap.Completed, panelWidth))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	footer := fmt.Sprintf("%d available", len(snap.Available))
	if snap.Variant == models.VariantTwoZone {
		footer += fmt.Sprintf(" | %d completed", len(snap.Completed))
	}
	if m.status != "" {
		footer += " | " + m.status
	}

	help := "tab: focus | enter: add | space: pick up | d: delete | q: quit"
	if m.dragging() {
		help = "up/down: hover | left/right: switch list | space: drop | esc: cancel | ctrl+r: reload"
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n%s", title, inputRow, body, footer, boardHelpStyle.Render(help))
}

func (m boardModel) renderPanel(list models.ListID, header string, tasks []models.Task, width int) string {
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render(header))
	b.WriteString("\n")

	focused := m.focusedList() == list && (m.focus == focusAvailable || m.focus == focusCompleted)
	row := 0
	marker := func() string {
		if focused && m.cursor[list] == row {
			return cursorStyle.Render("> ")
		}
		return "  "
	}

	if m.zoneRows() == 1 {
		zone := zoneFor(list)
		label := "Drop here to make available"
		if zone == models.ZoneCompleted {
			label = "Drop here to complete"
		}
		style := zoneStyle
		if m.board.HoveredZone() == zone {
			style = hoveredZoneStyle
		}
		b.WriteString(marker() + style.Width(width-6).Render(label))
		b.WriteString("\n")
		row++
	}

	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n")
	}
	for _, task := range tasks {
		text := task.Text
		switch {
		case m.payload.TaskID == task.ID:
			text = draggedStyle.Render(text + " (dragging)")
		case list == models.ListCompleted:
			text = completedStyle.Render(text)
		}
		b.WriteString(marker() + text + "\n")
		row++
	}

	style := listPanelStyle
	if focused {
		style = activeListPanelStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
