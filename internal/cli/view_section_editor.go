package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbeaumont/crfstudio/internal/cli/formatter"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/editor"
)

// itemKind distinguishes the entries of the flattened editor list.
type itemKind int

const (
	itemSection itemKind = iota
	itemRow
	itemField
)

// editorItem addresses one selectable entry of the flattened tree:
// a section header, an empty row placeholder, or a field.
type editorItem struct {
	kind itemKind
	si   int
	ri   int
	fi   int
}

// sectionEditorView edits one visit's sections, rows and fields as a
// flattened list with a single cursor.
type sectionEditorView struct {
	state  *SharedState
	vi     int
	items  []editorItem
	cursor int
	scroll int
}

func newSectionEditorView(state *SharedState, vi int) *sectionEditorView {
	v := &sectionEditorView{state: state, vi: vi}
	v.rebuild()
	return v
}

func (v *sectionEditorView) Init() tea.Cmd { return nil }

// rebuild reflattens the tree after any structural change.
func (v *sectionEditorView) rebuild() {
	v.items = v.items[:0]
	if v.vi >= len(v.state.Visits) {
		v.cursor = 0
		return
	}
	for si, sec := range v.state.Visits[v.vi].Sections {
		v.items = append(v.items, editorItem{kind: itemSection, si: si})
		for ri, row := range sec.Rows {
			if len(row.Fields) == 0 {
				v.items = append(v.items, editorItem{kind: itemRow, si: si, ri: ri})
				continue
			}
			for fi := range row.Fields {
				v.items = append(v.items, editorItem{kind: itemField, si: si, ri: ri, fi: fi})
			}
		}
	}
	if v.cursor >= len(v.items) {
		v.cursor = max(0, len(v.items)-1)
	}
}

func (v *sectionEditorView) current() (editorItem, bool) {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return editorItem{}, false
	}
	return v.items[v.cursor], true
}

func (v *sectionEditorView) visit() *domain.Visit {
	if v.vi >= len(v.state.Visits) {
		return nil
	}
	return &v.state.Visits[v.vi]
}

func (v *sectionEditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.rebuild()
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *sectionEditorView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := v.state
	item, ok := v.current()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
		return v, nil

	case "A":
		return v, v.addSectionCmd()
	case "R":
		if ok {
			return v, v.renameSectionCmd(item.si)
		}
	case "X":
		if ok {
			st.ReplaceVisits(editor.RemoveSection(st.Visits, v.vi, item.si))
			v.rebuild()
		}
	case "[":
		if ok && item.kind == itemSection {
			st.ReplaceVisits(editor.MoveSection(st.Visits, v.vi, item.si, item.si-1))
			v.rebuild()
		}
	case "]":
		if ok && item.kind == itemSection {
			st.ReplaceVisits(editor.MoveSection(st.Visits, v.vi, item.si, item.si+1))
			v.rebuild()
		}

	case "o":
		if ok {
			st.ReplaceVisits(editor.AddRow(st.Visits, v.vi, item.si, 1))
			v.rebuild()
		}
	case "c":
		if ok && item.kind != itemSection {
			row := v.rowAt(item)
			if row != nil {
				next := row.Columns%domain.MaxRowColumns + 1
				st.ReplaceVisits(editor.SetRowColumns(st.Visits, v.vi, item.si, item.ri, next))
				v.rebuild()
			}
		}
	case "K":
		if ok && item.kind != itemSection {
			st.ReplaceVisits(editor.MoveRow(st.Visits, v.vi, item.si, item.ri, item.ri-1))
			v.rebuild()
		}
	case "J":
		if ok && item.kind != itemSection {
			st.ReplaceVisits(editor.MoveRow(st.Visits, v.vi, item.si, item.ri, item.ri+1))
			v.rebuild()
		}
	case "D":
		if ok && item.kind == itemRow {
			st.ReplaceVisits(editor.RemoveRow(st.Visits, v.vi, item.si, item.ri))
			v.rebuild()
		}

	case "a":
		if ok {
			ri := -1
			if item.kind != itemSection {
				ri = item.ri
			}
			return v, v.addFieldCmd(item.si, ri)
		}
	case "x":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.RemoveField(st.Visits, v.vi, item.si, item.ri, item.fi))
			v.rebuild()
		}
	case "d":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.DuplicateField(st.Visits, v.vi, item.si, item.ri, item.fi))
			v.rebuild()
		}
	case "h":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.MoveFieldInRow(st.Visits, v.vi, item.si, item.ri, item.fi, -1))
			v.rebuild()
		}
	case "l":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.MoveFieldInRow(st.Visits, v.vi, item.si, item.ri, item.fi, +1))
			v.rebuild()
		}
	case "<":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.MoveFieldToRow(st.Visits, v.vi, item.si, item.ri, item.fi, item.ri-1))
			v.rebuild()
		}
	case ">":
		if ok && item.kind == itemField {
			st.ReplaceVisits(editor.MoveFieldToRow(st.Visits, v.vi, item.si, item.ri, item.fi, item.ri+1))
			v.rebuild()
		}
	case "e":
		if ok && item.kind == itemField {
			return v, v.editFieldMetaCmd(item)
		}
	case "p":
		if ok && item.kind == itemField {
			if f := v.fieldAt(item); f != nil {
				return v, pushView(newPreviewViewAt(st, f.ID))
			}
		}
		return v, pushView(newPreviewView(st))
	case "enter":
		if ok && item.kind == itemField {
			if f := v.fieldAt(item); f != nil {
				return v, pushView(newFieldSettingsWizard(st, v.vi, item.si, item.ri, item.fi, *f))
			}
		}
	}
	return v, nil
}

func (v *sectionEditorView) rowAt(item editorItem) *domain.Row {
	visit := v.visit()
	if visit == nil || item.si >= len(visit.Sections) {
		return nil
	}
	sec := &visit.Sections[item.si]
	if item.ri >= len(sec.Rows) {
		return nil
	}
	return &sec.Rows[item.ri]
}

func (v *sectionEditorView) fieldAt(item editorItem) *domain.Field {
	row := v.rowAt(item)
	if row == nil || item.fi >= len(row.Fields) {
		return nil
	}
	return &row.Fields[item.fi]
}

func (v *sectionEditorView) addSectionCmd() tea.Cmd {
	st := v.state
	var title string
	form := titleForm("Section Title", &title)
	wizard := newWizardView(st, "New Section", form, func() tea.Cmd {
		st.ReplaceVisits(editor.AddSection(st.Visits, v.vi, title))
		return refreshViews()
	})
	return pushView(wizard)
}

func (v *sectionEditorView) renameSectionCmd(si int) tea.Cmd {
	st := v.state
	visit := v.visit()
	if visit == nil || si >= len(visit.Sections) {
		return nil
	}
	title := visit.Sections[si].Title
	form := titleForm("Section Title", &title)
	wizard := newWizardView(st, "Rename Section", form, func() tea.Cmd {
		st.ReplaceVisits(editor.RenameSection(st.Visits, v.vi, si, title))
		return refreshViews()
	})
	return pushView(wizard)
}

func (v *sectionEditorView) addFieldCmd(si, ri int) tea.Cmd {
	st := v.state
	var name, label string
	ftype := "text"
	form := newFieldForm(&name, &label, &ftype)
	wizard := newWizardView(st, "New Field", form, func() tea.Cmd {
		f := editor.NewField(domain.FieldType(ftype), name, label)
		st.ReplaceVisits(editor.InsertField(st.Visits, v.vi, si, ri, f))
		return refreshViews()
	})
	return pushView(wizard)
}

func (v *sectionEditorView) editFieldMetaCmd(item editorItem) tea.Cmd {
	st := v.state
	f := v.fieldAt(item)
	if f == nil {
		return nil
	}
	name, label := f.Name, f.Label
	form := huhNameLabelForm(&name, &label)
	wizard := newWizardView(st, "Edit Field", form, func() tea.Cmd {
		st.ReplaceVisits(editor.EditFieldMeta(st.Visits, v.vi, item.si, item.ri, item.fi, name, label))
		return refreshViews()
	})
	return pushView(wizard)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *sectionEditorView) View() string {
	visit := v.visit()
	if visit == nil {
		return formatter.Dim("Visit no longer exists.")
	}
	if len(visit.Sections) == 0 {
		return formatter.Dim("No sections yet. Press 'A' to add one.")
	}

	lines := make([]string, 0, len(v.items))
	for idx, item := range v.items {
		lines = append(lines, v.renderItem(visit, item, idx == v.cursor))
	}

	// Keep the cursor line inside the visible window.
	height := v.state.ContentHeight()
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
	if v.cursor >= v.scroll+height {
		v.scroll = v.cursor - height + 1
	}
	end := min(len(lines), v.scroll+height)
	return strings.Join(lines[v.scroll:end], "\n")
}

func (v *sectionEditorView) renderItem(visit *domain.Visit, item editorItem, selected bool) string {
	marker := "  "
	if selected {
		marker = formatter.StyleHeader.Render("› ")
	}

	switch item.kind {
	case itemSection:
		title := strings.ToUpper(visit.Sections[item.si].Title)
		if selected {
			return marker + formatter.StyleHeader.Render(title)
		}
		return marker + formatter.StyleYellow.Render(title)

	case itemRow:
		row := visit.Sections[item.si].Rows[item.ri]
		return marker + formatter.Dim(fmt.Sprintf("  (empty row, %d col)", row.Columns))

	default:
		row := visit.Sections[item.si].Rows[item.ri]
		f := row.Fields[item.fi]
		cell := fmt.Sprintf("%d/%d", item.fi+1, row.Columns)
		name := f.Name
		if selected {
			name = formatter.Bold(name)
		}
		reqMark := ""
		if f.Required {
			reqMark = formatter.StyleRed.Render("*")
		}
		return fmt.Sprintf("%s  %s %s%s  %s  %s",
			marker,
			formatter.FieldTypeBadge(f.Type),
			name, reqMark,
			formatter.Dim(f.Label),
			formatter.Dim(cell),
		)
	}
}

func (v *sectionEditorView) ID() ViewID { return ViewSectionEditor }
func (v *sectionEditorView) Title() string {
	if visit := v.visit(); visit != nil {
		return visit.Title
	}
	return ""
}

func (v *sectionEditorView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "settings")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "field")),
		key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "section")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dup")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cols")),
		key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "shift")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}
