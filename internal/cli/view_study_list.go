package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbeaumont/crfstudio/internal/cli/formatter"
	"github.com/tbeaumont/crfstudio/internal/domain"
)

// studiesLoadedMsg carries the result of the async study list load.
type studiesLoadedMsg struct {
	studies []*domain.Study
	err     error
}

// studyOpenedMsg carries the loaded visit tree for a selected study.
type studyOpenedMsg struct {
	study  *domain.Study
	visits []domain.Visit
	err    error
}

// studyListView is the home view: pick a study to edit its forms.
type studyListView struct {
	state   *SharedState
	studies []*domain.Study
	cursor  int
	loading bool
	loadErr error
}

func newStudyListView(state *SharedState) *studyListView {
	return &studyListView{state: state, loading: true}
}

func (v *studyListView) Init() tea.Cmd {
	return v.loadStudies()
}

func (v *studyListView) loadStudies() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		studies, err := app.Studies.List(context.Background())
		return studiesLoadedMsg{studies: studies, err: err}
	}
}

func (v *studyListView) openStudy(study *domain.Study) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		visits, err := app.Forms.LoadStudy(context.Background(), study.ID)
		return studyOpenedMsg{study: study, visits: visits, err: err}
	}
}

func (v *studyListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case studiesLoadedMsg:
		v.loading = false
		v.loadErr = msg.err
		v.studies = msg.studies
		if v.cursor >= len(v.studies) {
			v.cursor = max(0, len(v.studies)-1)
		}
		return v, nil

	case studyOpenedMsg:
		if msg.err != nil {
			return v, notifyErr(fmt.Sprintf("Could not open study: %v", msg.err))
		}
		v.state.SetActiveStudy(msg.study)
		v.state.Visits = msg.visits
		return v, pushView(newVisitListView(v.state))

	case refreshViewMsg:
		return v, v.loadStudies()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *studyListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.studies)-1 {
			v.cursor++
		}
	case "enter":
		if s := v.selected(); s != nil {
			return v, v.openStudy(s)
		}
	case "a":
		return v, v.addStudyCmd()
	case "r":
		if s := v.selected(); s != nil {
			return v, v.renameStudyCmd(s)
		}
	case "x":
		if s := v.selected(); s != nil {
			return v, v.deleteStudyCmd(s)
		}
	}
	return v, nil
}

func (v *studyListView) selected() *domain.Study {
	if v.cursor < 0 || v.cursor >= len(v.studies) {
		return nil
	}
	return v.studies[v.cursor]
}

func (v *studyListView) addStudyCmd() tea.Cmd {
	app := v.state.App
	var protocol, name string
	form := studyCreateForm(&protocol, &name)
	wizard := newWizardView(v.state, "New Study", form, func() tea.Cmd {
		return func() tea.Msg {
			if _, err := app.Studies.Create(context.Background(), protocol, name); err != nil {
				return noticeMsg{text: fmt.Sprintf("Could not create study: %v", err), isErr: true}
			}
			return noticeMsg{text: fmt.Sprintf("Created study %s", protocol)}
		}
	})
	return pushView(wizard)
}

func (v *studyListView) renameStudyCmd(study *domain.Study) tea.Cmd {
	app := v.state.App
	name := study.Name
	form := titleForm("Study Name", &name)
	wizard := newWizardView(v.state, "Rename Study", form, func() tea.Cmd {
		return func() tea.Msg {
			if err := app.Studies.Rename(context.Background(), study.ID, name); err != nil {
				return noticeMsg{text: fmt.Sprintf("Could not rename study: %v", err), isErr: true}
			}
			return noticeMsg{text: "Study renamed"}
		}
	})
	return pushView(wizard)
}

func (v *studyListView) deleteStudyCmd(study *domain.Study) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Studies.Delete(context.Background(), study.ID); err != nil {
			return noticeMsg{text: fmt.Sprintf("Could not delete study: %v", err), isErr: true}
		}
		return noticeMsg{text: fmt.Sprintf("Deleted study %s", study.ProtocolCode)}
	}
}

func (v *studyListView) View() string {
	if v.loading {
		return formatter.Dim("Loading studies...")
	}
	if v.loadErr != nil {
		return formatter.Error(fmt.Sprintf("Could not load studies: %v", v.loadErr))
	}
	if len(v.studies) == 0 {
		return formatter.Dim("No studies yet. Press 'a' to create one.")
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Studies") + "\n\n")
	for i, s := range v.studies {
		marker := "  "
		line := fmt.Sprintf("%s  %s", formatter.StyleGreen.Render(s.ProtocolCode), s.Name)
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("› ")
			line = formatter.Bold(fmt.Sprintf("%s  %s", s.ProtocolCode, s.Name))
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func (v *studyListView) ID() ViewID    { return ViewStudyList }
func (v *studyListView) Title() string { return "" }
func (v *studyListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}
