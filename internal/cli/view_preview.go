package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbeaumont/crfstudio/internal/cli/formatter"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/preview"
)

// previewView renders the study as a patient would fill it in: one
// section at a time, with live completion bars at every level. Answers
// live only for the lifetime of the view.
type previewView struct {
	state   *SharedState
	session *preview.Session
	answers preview.Answers

	cursor    int // field index within the current section
	optCursor int // option index within a focused selection field

	editing bool
	input   textinput.Model

	// Field to jump to once the view is on screen, set when the preview
	// opens from a field in the section editor.
	pendingJump string
}

func newPreviewView(state *SharedState) *previewView {
	ti := textinput.New()
	ti.Prompt = "> "
	return &previewView{
		state:   state,
		session: preview.NewSession(state.Visits),
		answers: preview.Answers{},
		input:   ti,
	}
}

// newPreviewViewAt opens the preview focused on one field: the session
// starts at the field's owning section with the cursor on the field.
func newPreviewViewAt(state *SharedState, fieldID string) *previewView {
	v := newPreviewView(state)
	v.pendingJump = fieldID
	return v
}

func (v *previewView) Init() tea.Cmd {
	if v.pendingJump == "" {
		return nil
	}
	fieldID := v.pendingJump
	v.pendingJump = ""
	return func() tea.Msg { return scrollToFieldMsg{fieldID: fieldID} }
}

// fields returns the current section's fields in reading order.
func (v *previewView) fields() []domain.Field {
	_, sec, ok := v.session.Section()
	if !ok {
		return nil
	}
	return domain.SectionFields(sec)
}

func (v *previewView) currentField() (domain.Field, bool) {
	fs := v.fields()
	if v.cursor < 0 || v.cursor >= len(fs) {
		return domain.Field{}, false
	}
	return fs[v.cursor], true
}

func (v *previewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case refreshViewMsg:
		// Structure may have changed underneath; restart on the same tree.
		v.session = preview.NewSession(v.state.Visits)
		v.cursor = 0
		return v, nil

	case scrollToFieldMsg:
		if fieldID, ok := v.session.JumpToField(msg.fieldID); ok {
			v.cursor = 0
			for i, f := range v.fields() {
				if f.ID == fieldID {
					v.cursor = i
					break
				}
			}
		}
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *previewView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return v, popView()

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
			v.optCursor = 0
		}
	case "down", "j":
		if v.cursor < len(v.fields())-1 {
			v.cursor++
			v.optCursor = 0
		}

	case "n", "right":
		if v.session.Next() {
			v.cursor = 0
			v.optCursor = 0
		}
	case "p", "left":
		if v.session.Previous() {
			v.cursor = 0
			v.optCursor = 0
		}

	case "h":
		if f, ok := v.currentField(); ok && f.Type.IsSelection() && v.optCursor > 0 {
			v.optCursor--
		}
	case "l":
		if f, ok := v.currentField(); ok && f.Type.IsSelection() {
			if v.optCursor < len(preview.Choices(f))-1 {
				v.optCursor++
			}
		}

	case " ":
		if f, ok := v.currentField(); ok && f.Type.IsSelection() {
			choices := preview.Choices(f)
			if v.optCursor < len(choices) {
				identity := choices[v.optCursor].Identity
				if f.Type == domain.FieldCheckbox {
					v.answers.Toggle(f.ID, identity)
				} else {
					v.answers.Select(f.ID, identity)
				}
			}
		}

	case "backspace":
		if f, ok := v.currentField(); ok {
			delete(v.answers, f.ID)
		}

	case "enter":
		if f, ok := v.currentField(); ok {
			if f.Type.IsSelection() {
				// Same as space: selection happens on the option cursor.
				return v.handleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			}
			return v, v.startEditing(f)
		}
	}
	return v, nil
}

func (v *previewView) startEditing(f domain.Field) tea.Cmd {
	v.editing = true
	v.input.SetValue(v.currentAnswerText(f))
	v.input.Placeholder = inputPlaceholder(f)
	if f.Type.IsTextual() && f.Settings.MaxLength > 0 {
		v.input.CharLimit = f.Settings.MaxLength
	} else {
		v.input.CharLimit = 0
	}
	return v.input.Focus()
}

func (v *previewView) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := v.currentField()
	if !ok {
		v.editing = false
		return v, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		v.commitAnswer(f, v.input.Value())
		v.editing = false
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)

	// Number fields sanitize as typed: stray characters never appear,
	// and excess decimals are truncated immediately.
	if f.Type == domain.FieldNumber {
		cleaned := preview.SanitizeNumber(v.input.Value(), f.Settings.AllowDecimals)
		if f.Settings.AllowDecimals {
			cleaned = preview.TruncateDecimals(cleaned, f.Settings.DecimalPlaces)
		}
		if cleaned != v.input.Value() {
			v.input.SetValue(cleaned)
			v.input.CursorEnd()
		}
	}
	return v, cmd
}

// currentAnswerText seeds the inline editor from the stored answer.
func (v *previewView) currentAnswerText(f domain.Field) string {
	if f.Type == domain.FieldDate && f.Settings.DateFormat == domain.DateFormatPartial {
		p := v.answers.Partial(f.ID)
		return fmt.Sprintf("%s-%s-%s", p.Year, p.Month, p.Day)
	}
	return v.answers.Text(f.ID)
}

// commitAnswer stores the edited value in the shape the field expects.
func (v *previewView) commitAnswer(f domain.Field, value string) {
	if f.Type == domain.FieldDate && f.Settings.DateFormat == domain.DateFormatPartial {
		p := parsePartialInput(value)
		if p.Empty() {
			delete(v.answers, f.ID)
			return
		}
		v.answers.SetPartial(f.ID, p)
		return
	}
	if strings.TrimSpace(value) == "" {
		delete(v.answers, f.ID)
		return
	}
	v.answers.SetText(f.ID, value)
}

// parsePartialInput splits "YYYY-MM-DD" with any component left blank
// into the three independent partial-date components.
func parsePartialInput(s string) preview.PartialDate {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	var p preview.PartialDate
	if len(parts) > 0 {
		p.Year = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		p.Month = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		p.Day = strings.TrimSpace(parts[2])
	}
	return p
}

func inputPlaceholder(f domain.Field) string {
	switch f.Type {
	case domain.FieldNumber:
		if f.Settings.Unit != "" {
			return "number (" + f.Settings.Unit + ")"
		}
		return "number"
	case domain.FieldDate:
		switch f.Settings.DateFormat {
		case domain.DateFormatPartial:
			return "YYYY-MM-DD (leave parts blank)"
		case domain.DateFormatYear:
			return "YYYY"
		case domain.DateFormatMonthYear:
			return "YYYY-MM"
		case domain.DateFormatDateTime:
			return "YYYY-MM-DD HH:MM"
		case domain.DateFormatTime:
			return "HH:MM"
		default:
			return "YYYY-MM-DD"
		}
	case domain.FieldTime:
		return "HH:MM"
	}
	return ""
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *previewView) View() string {
	visit, sec, ok := v.session.Section()
	if !ok {
		return formatter.Dim("Nothing to preview: the study has no sections.")
	}

	var b strings.Builder

	global := preview.GlobalProgress(v.state.Visits, v.answers)
	b.WriteString(fmt.Sprintf("%s %s\n",
		formatter.Dim("Study   "), formatter.RenderProgress(global, 20)))
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		formatter.Dim("Visit   "),
		formatter.RenderProgress(preview.VisitProgress(visit, v.answers), 20),
		visit.Title))
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		formatter.Dim("Section "),
		formatter.RenderProgress(preview.SectionProgress(sec, v.answers), 20),
		sec.Title))

	fs := domain.SectionFields(sec)
	if len(fs) == 0 {
		b.WriteString(formatter.Dim("This section has no fields."))
		return b.String()
	}

	for i, f := range fs {
		b.WriteString(v.renderField(f, i == v.cursor))
	}
	return b.String()
}

func (v *previewView) renderField(f domain.Field, selected bool) string {
	marker := "  "
	if selected {
		marker = formatter.StyleHeader.Render("› ")
	}

	label := domain.CoalesceStr(f.Label, f.Name)
	if f.Required {
		label += formatter.StyleRed.Render(" *")
	}
	head := marker + formatter.Bold(label)
	if f.HelpText != "" {
		head += "  " + formatter.Dim(f.HelpText)
	}

	var body string
	switch {
	case f.Type.IsSelection():
		body = v.renderChoices(f, selected)
	default:
		if selected && v.editing {
			body = "    " + v.input.View()
		} else {
			body = "    " + v.renderScalarAnswer(f)
		}
	}

	return head + "\n" + body + "\n\n"
}

func (v *previewView) renderChoices(f domain.Field, selected bool) string {
	choices := preview.Choices(f)
	if len(choices) == 0 {
		return "    " + formatter.Dim("(no options configured)")
	}

	horizontal := f.Settings.Layout == domain.LayoutHorizontal && f.Type != domain.FieldSelect
	var parts []string
	for i, c := range choices {
		box := "( )"
		if f.Type == domain.FieldCheckbox {
			box = "[ ]"
		}
		if v.answers.Checked(f.ID, c.Identity) {
			if f.Type == domain.FieldCheckbox {
				box = formatter.StyleGreen.Render("[x]")
			} else {
				box = formatter.StyleGreen.Render("(•)")
			}
		}
		label := c.Label
		if selected && i == v.optCursor {
			label = formatter.Bold(label)
		}
		parts = append(parts, box+" "+label)
	}

	if horizontal {
		return "    " + strings.Join(parts, "   ")
	}
	return "    " + strings.Join(parts, "\n    ")
}

func (v *previewView) renderScalarAnswer(f domain.Field) string {
	if f.Type == domain.FieldDate && f.Settings.DateFormat == domain.DateFormatPartial {
		p := v.answers.Partial(f.ID)
		if p.Empty() {
			return formatter.Dim("(unanswered)")
		}
		show := func(s string) string {
			if s == "" {
				return "??"
			}
			return s
		}
		return fmt.Sprintf("%s-%s-%s", show(p.Year), show(p.Month), show(p.Day))
	}

	text := v.answers.Text(f.ID)
	if text == "" {
		return formatter.Dim("(unanswered)")
	}
	if f.Settings.Sensitive {
		return strings.Repeat("•", len(text))
	}
	if f.Type == domain.FieldNumber && f.Settings.Unit != "" {
		return text + " " + formatter.Dim(f.Settings.Unit)
	}
	return text
}

func (v *previewView) ID() ViewID    { return ViewPreview }
func (v *previewView) Title() string { return "Preview" }
func (v *previewView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "choose")),
		key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "option")),
		key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "section")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "clear")),
	}
}
