package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbeaumont/crfstudio/internal/cli/formatter"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/editor"
	"github.com/tbeaumont/crfstudio/internal/save"
)

// visitListView lists the visits of the active study and hosts the
// save action for the whole editing buffer.
type visitListView struct {
	state  *SharedState
	cursor int
}

func newVisitListView(state *SharedState) *visitListView {
	return &visitListView{state: state}
}

func (v *visitListView) Init() tea.Cmd { return nil }

func (v *visitListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case refreshViewMsg:
		if v.cursor >= len(v.state.Visits) {
			v.cursor = max(0, len(v.state.Visits)-1)
		}
		return v, nil

	case saveDoneMsg:
		v.state.Saving = false
		if msg.err != nil {
			return v, notifyErr(save.UserMessage(msg.err))
		}
		v.state.MarkSaved()
		// Reload so draft ids are replaced by the store-assigned ones.
		return v, tea.Batch(v.reload(), notify("All forms saved"))

	case visitsReloadedMsg:
		if msg.err != nil {
			return v, notifyErr(fmt.Sprintf("Could not reload forms: %v", msg.err))
		}
		v.state.Visits = msg.visits
		v.state.Dirty = false
		return v, refreshViews()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// visitsReloadedMsg carries the post-save reload of the visit tree.
type visitsReloadedMsg struct {
	visits []domain.Visit
	err    error
}

func countVisitFields(v domain.Visit) int {
	n := 0
	for _, sec := range v.Sections {
		for _, row := range sec.Rows {
			n += len(row.Fields)
		}
	}
	return n
}

func (v *visitListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := v.state
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(st.Visits)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(st.Visits) {
			return v, pushView(newSectionEditorView(st, v.cursor))
		}
	case "a":
		return v, v.addVisitCmd()
	case "r":
		if v.cursor < len(st.Visits) {
			return v, v.renameVisitCmd(v.cursor)
		}
	case "h":
		if v.cursor < len(st.Visits) {
			st.ReplaceVisits(editor.ToggleVisitHidden(st.Visits, v.cursor))
		}
	case "K":
		if v.cursor > 0 {
			st.ReplaceVisits(editor.MoveVisit(st.Visits, v.cursor, v.cursor-1))
			v.cursor--
		}
	case "J":
		if v.cursor < len(st.Visits)-1 {
			st.ReplaceVisits(editor.MoveVisit(st.Visits, v.cursor, v.cursor+1))
			v.cursor++
		}
	case "x":
		if v.cursor < len(st.Visits) {
			st.MarkVisitRemoved(st.Visits[v.cursor].ID)
			st.ReplaceVisits(editor.RemoveVisit(st.Visits, v.cursor))
			if v.cursor >= len(st.Visits) {
				v.cursor = max(0, len(st.Visits)-1)
			}
		}
	case "p":
		if len(st.Visits) > 0 {
			return v, pushView(newPreviewView(st))
		}
	case "s":
		return v, v.saveCmd()
	}
	return v, nil
}

func (v *visitListView) addVisitCmd() tea.Cmd {
	st := v.state
	var title string
	form := titleForm("Visit Title", &title)
	wizard := newWizardView(st, "New Visit", form, func() tea.Cmd {
		st.ReplaceVisits(editor.AddVisit(st.Visits, title))
		return refreshViews()
	})
	return pushView(wizard)
}

func (v *visitListView) renameVisitCmd(vi int) tea.Cmd {
	st := v.state
	title := st.Visits[vi].Title
	form := titleForm("Visit Title", &title)
	wizard := newWizardView(st, "Rename Visit", form, func() tea.Cmd {
		st.ReplaceVisits(editor.RenameVisit(st.Visits, vi, title))
		return refreshViews()
	})
	return pushView(wizard)
}

// saveCmd runs the save transaction asynchronously. The Saving flag is
// a mutex: repeated presses while a save is in flight are ignored.
func (v *visitListView) saveCmd() tea.Cmd {
	st := v.state
	if st.Saving {
		return nil
	}
	st.Saving = true
	app := st.App
	studyID := st.StudyID
	visits := st.Visits
	removed := st.RemovedVisitIDs
	return func() tea.Msg {
		err := app.Forms.SaveStudy(context.Background(), studyID, visits, removed)
		return saveDoneMsg{err: err}
	}
}

func (v *visitListView) reload() tea.Cmd {
	app := v.state.App
	studyID := v.state.StudyID
	return func() tea.Msg {
		visits, err := app.Forms.LoadStudy(context.Background(), studyID)
		return visitsReloadedMsg{visits: visits, err: err}
	}
}

func (v *visitListView) View() string {
	st := v.state
	if len(st.Visits) == 0 {
		return formatter.Dim("No visits yet. Press 'a' to add the first visit.")
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Visits") + "\n\n")
	for i, visit := range st.Visits {
		marker := "  "
		title := visit.Title
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("› ")
			title = formatter.Bold(title)
		}
		meta := fmt.Sprintf("%d sections, %d fields",
			len(visit.Sections), countVisitFields(visit))
		line := fmt.Sprintf("%s%s  %s", marker, title, formatter.Dim(meta))
		if visit.Hidden {
			line += " " + formatter.StyleYellow.Render("(hidden)")
		}
		b.WriteString(line + "\n")
	}

	if st.Saving {
		b.WriteString("\n" + formatter.Dim("Saving..."))
	}
	return b.String()
}

func (v *visitListView) ID() ViewID    { return ViewVisitList }
func (v *visitListView) Title() string { return v.state.StudyName }
func (v *visitListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide")),
		key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}
