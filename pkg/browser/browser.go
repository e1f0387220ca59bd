// Package browser is a terminal front end for the gallery. It drives the same
// controller, viewer and exporter as the web pages.
package browser

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"school-gallery/pkg/models"
	"school-gallery/pkg/services"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E40AF"))
	englishStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3B82F6")).Padding(1, 2)
	disabledStyle = lipgloss.NewStyle().Faint(true)
)

// exportDoneMsg is sent when a background export finishes
type exportDoneMsg struct {
	result *services.ExportResult
	err    error
}

// Model is the bubbletea model of the terminal gallery
type Model struct {
	ctrl     *services.Controller
	exporter *services.Exporter
	sink     services.Sink
	cursor   int

	status    models.Label
	statusErr bool
	quitting  bool
}

// New creates a terminal gallery that delivers exports to sink
func New(svc *services.Service, sink services.Sink) *Model {
	return &Model{
		ctrl:     svc.NewController(),
		exporter: svc.NewExporter(),
		sink:     sink,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// page renders the current controller state
func (m *Model) page() models.Page {
	status := services.ExportStatus{Label: services.MsgDownloadAll}
	if m.ctrl.View() == models.ViewPhotos {
		status = m.exporter.Status()
	}
	return services.Render(m.ctrl, status)
}

func (m *Model) itemCount(page models.Page) int {
	switch m.ctrl.View() {
	case models.ViewCategories:
		return len(page.Categories)
	case models.ViewSubcategories:
		return len(page.Subcategories)
	}
	return len(page.Photos)
}

func (m *Model) moveCursor(delta int, page models.Page) {
	n := m.itemCount(page)
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) setStatus(label models.Label, isErr bool) {
	m.status = label
	m.statusErr = isErr
}

// Update handles key presses and export completion
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus(services.UserMessage(msg.err), true)
		} else {
			m.setStatus(services.MsgExportDone, false)
		}
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	if key == "ctrl+c" || key == "q" {
		m.quitting = true
		return tea.Quit
	}

	viewer := m.ctrl.Viewer()
	if viewer.IsOpen() {
		switch key {
		case "left", "h":
			viewer.HandleKey(services.KeyArrowLeft)
		case "right", "l":
			viewer.HandleKey(services.KeyArrowRight)
		case "esc", "backspace":
			viewer.HandleKey(services.KeyEscape)
			m.cursor = viewer.Index()
		}
		return nil
	}

	page := m.page()
	switch key {
	case "up", "k":
		m.moveCursor(-1, page)
	case "down", "j":
		m.moveCursor(1, page)
	case "left", "h":
		if m.ctrl.View() == models.ViewPhotos {
			m.moveCursor(-1, page)
		}
	case "right", "l":
		if m.ctrl.View() == models.ViewPhotos {
			m.moveCursor(1, page)
		}
	case "enter":
		m.enter(page)
	case "esc", "backspace":
		m.ctrl.Back()
		m.cursor = 0
		m.setStatus(models.Label{}, false)
	case "d":
		return m.startExport(page)
	}
	return nil
}

func (m *Model) enter(page models.Page) {
	var err error
	switch m.ctrl.View() {
	case models.ViewCategories:
		if m.cursor < len(page.Categories) {
			err = m.ctrl.EnterSubcategories(page.Categories[m.cursor].ID)
			m.cursor = 0
		}
	case models.ViewSubcategories:
		if m.cursor < len(page.Subcategories) {
			err = m.ctrl.EnterPhotos(m.ctrl.Selection().Category, page.Subcategories[m.cursor].ID)
			m.cursor = 0
		}
	case models.ViewPhotos:
		m.ctrl.OpenPhoto(m.cursor)
	}
	if err != nil {
		m.setStatus(services.UserMessage(err), true)
	}
}

func (m *Model) startExport(page models.Page) tea.Cmd {
	if !page.ShowExport {
		return nil
	}

	sel := m.ctrl.Selection()
	exporter := m.exporter
	if exporter.Status().Busy {
		m.setStatus(services.MsgExportBusy, true)
		return nil
	}

	m.setStatus(services.MsgDownloading, false)
	sink := m.sink
	return func() tea.Msg {
		result, err := exporter.ExportAll(context.Background(), sel, sink)
		return exportDoneMsg{result: result, err: err}
	}
}

func bilingual(l models.Label) string {
	return l.Hi + "  " + englishStyle.Render(l.En)
}

// View renders the current screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	page := m.page()
	var b strings.Builder

	b.WriteString(titleStyle.Render(page.Title.Hi+" | "+page.Title.En) + "\n\n")

	if page.Modal != nil {
		b.WriteString(m.modalView(page))
	} else {
		b.WriteString(m.listView(page))
	}

	if m.status != (models.Label{}) {
		style := lipgloss.NewStyle()
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status.String()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.help(page)))
	return b.String()
}

func (m *Model) listView(page models.Page) string {
	var b strings.Builder

	line := func(i int, text string) {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + text + "\n")
	}

	switch {
	case len(page.Categories) > 0:
		for i, card := range page.Categories {
			line(i, fmt.Sprintf("%s  (%s)", bilingual(card.Name), card.Subtitle.En))
		}
	case len(page.Subcategories) > 0:
		for i, card := range page.Subcategories {
			line(i, fmt.Sprintf("%s  (%s | %s)", bilingual(card.Name), card.Subtitle.Hi, card.Subtitle.En))
		}
	case page.Empty:
		b.WriteString(bilingual(page.EmptyMessage) + "\n")
	default:
		for i, photo := range page.Photos {
			line(i, fmt.Sprintf("%3d. %s", photo.Number, services.DownloadName(photo.Index)))
		}
		if page.ShowExport {
			label := bilingual(page.ExportLabel)
			if page.ExportDisabled {
				label = disabledStyle.Render(page.ExportLabel.String())
			}
			b.WriteString("\n[d] " + label + "\n")
		}
	}

	return b.String()
}

func (m *Model) modalView(page models.Page) string {
	viewer := m.ctrl.Viewer()
	body := fmt.Sprintf("%d / %d\n\n%s\n\n%s: %s",
		page.Modal.Index+1, viewer.Len(),
		viewer.Image(),
		services.MsgDownload.En, page.Modal.DownloadName)
	return modalStyle.Render(body) + "\n"
}

func (m *Model) help(page models.Page) string {
	switch {
	case page.Modal != nil:
		return "←/→ navigate • esc close • q quit"
	case m.ctrl.View() == models.ViewCategories:
		return "↑/↓ move • enter open • q quit"
	case m.ctrl.View() == models.ViewSubcategories:
		return "↑/↓ move • enter open • esc back • q quit"
	case page.ShowExport:
		return "↑/↓ move • enter view • d download all • esc back • q quit"
	}
	return "esc back • q quit"
}

// Run starts the terminal gallery. Logs go to logFile so they do not
// disturb the screen.
func Run(svc *services.Service, sink services.Sink, logFile string) error {
	f, err := tea.LogToFile(logFile, "school-gallery")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	p := tea.NewProgram(New(svc, sink), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
