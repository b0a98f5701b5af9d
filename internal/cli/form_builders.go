package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/editor"
)

// ── study / title dialogs ────────────────────────────────────────────────────

func studyCreateForm(protocol, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Protocol Code").
				Placeholder("ONC-2024").
				Value(protocol).
				Validate(validateRequired),
			huh.NewInput().
				Title("Study Name").
				Value(name).
				Validate(validateRequired),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func titleForm(prompt string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(prompt).
				Value(value).
				Validate(validateRequired),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

// newFieldForm collects name, label and type for a field being added.
func newFieldForm(name, label, ftype *string) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(domain.ValidFieldTypes))
	for _, t := range []string{"text", "textarea", "number", "date", "time", "select", "radio", "checkbox"} {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Field Name").
				Description("Normalized to UPPER_SNAKE_CASE on save").
				Placeholder("SYSTOLIC_BP").
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Label").
				Placeholder("Systolic blood pressure").
				Value(label),
			huh.NewSelect[string]().
				Title("Field Type").
				Options(typeOptions...).
				Value(ftype),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

// huhNameLabelForm edits an existing field's name and label in place.
func huhNameLabelForm(name, label *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Field Name").
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Label").
				Value(label),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

// ── field settings panels ────────────────────────────────────────────────────
//
// Each panel seeds its working copy from a full snapshot of the field's
// settings, edits locals while the dialog is open, and emits the FULL
// snapshot (untouched keys included) on completion. The editor replaces
// the field's settings wholesale; single-key merges are never applied.

// settingsPanel builds a per-type huh form and reassembles the snapshot.
type settingsPanel interface {
	form() *huh.Form
	snapshot() editor.Snapshot
}

func panelFor(f domain.Field) settingsPanel {
	switch {
	case f.Type.IsTextual():
		return newTextPanel(f)
	case f.Type == domain.FieldNumber:
		return newNumberPanel(f)
	case f.Type.IsTemporal():
		return newDatePanel(f)
	case f.Type.IsSelection():
		return newSelectionPanel(f)
	default:
		return newTextPanel(f)
	}
}

// newFieldSettingsWizard opens the settings panel for the field at the
// given tree position and applies the emitted snapshot on completion.
func newFieldSettingsWizard(state *SharedState, vi, si, ri, fi int, f domain.Field) View {
	panel := panelFor(f)
	title := fmt.Sprintf("Settings: %s", f.Name)
	done := func() tea.Cmd {
		snap := panel.snapshot()
		state.ReplaceVisits(editor.ApplySettings(state.Visits, vi, si, ri, fi, snap))
		return refreshViews()
	}
	return newWizardView(state, title, panel.form(), done)
}

// ── text / textarea ──────────────────────────────────────────────────────────

type textPanel struct {
	snap editor.Snapshot

	textType    string
	minLen      string
	maxLen      string
	sensitive   bool
	required    bool
	description string
}

func newTextPanel(f domain.Field) *textPanel {
	snap := editor.TakeSnapshot(f)
	return &textPanel{
		snap:        snap,
		textType:    string(snap.Settings.TextType),
		minLen:      strconv.Itoa(snap.Settings.MinLength),
		maxLen:      strconv.Itoa(snap.Settings.MaxLength),
		sensitive:   snap.Settings.Sensitive,
		required:    snap.Required,
		description: snap.Description,
	}
}

func (p *textPanel) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Input Kind").
				Options(
					huh.NewOption("Single line (max 255)", "text"),
					huh.NewOption("Multi line (max 2000)", "textarea"),
				).
				Value(&p.textType),
			huh.NewInput().
				Title("Minimum Length").
				Value(&p.minLen).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Maximum Length").
				Value(&p.maxLen).
				Validate(validateOptionalInt),
			huh.NewConfirm().
				Title("Sensitive (encrypted at rest)").
				Value(&p.sensitive),
			huh.NewConfirm().
				Title("Required").
				Value(&p.required),
			huh.NewInput().
				Title("Description").
				Value(&p.description),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (p *textPanel) snapshot() editor.Snapshot {
	snap := p.snap
	snap.Settings = snap.Settings.Clone()
	snap.Settings.MinLength = parseIntDefault(p.minLen, 0)
	snap.Settings.MaxLength = parseIntDefault(p.maxLen, snap.Settings.MaxLength)
	snap.SetTextType(domain.TextType(p.textType))
	snap.Settings.Sensitive = p.sensitive
	snap.Required = p.required
	snap.Description = p.description
	return snap
}

// ── number ───────────────────────────────────────────────────────────────────

type numberPanel struct {
	snap editor.Snapshot

	allowDecimals bool
	decimalPlaces string
	unit          string
	minValue      string
	maxValue      string
	required      bool
	description   string
}

func newNumberPanel(f domain.Field) *numberPanel {
	snap := editor.TakeSnapshot(f)
	return &numberPanel{
		snap:          snap,
		allowDecimals: snap.Settings.AllowDecimals,
		decimalPlaces: strconv.Itoa(snap.Settings.DecimalPlaces),
		unit:          snap.Settings.Unit,
		minValue:      snap.Settings.MinValue,
		maxValue:      snap.Settings.MaxValue,
		required:      snap.Required,
		description:   snap.Description,
	}
}

func (p *numberPanel) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow Decimals").
				Value(&p.allowDecimals),
			huh.NewInput().
				Title("Decimal Places (1-10)").
				Value(&p.decimalPlaces).
				Validate(validateIntRange(domain.MinDecimalPlaces, domain.MaxDecimalPlaces)),
			huh.NewInput().
				Title("Unit").
				Description("Start typing for suggestions from the curated list").
				Suggestions(domain.MeasurementUnits).
				Value(&p.unit),
			huh.NewInput().
				Title("Minimum Value (blank = unset)").
				Value(&p.minValue).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Maximum Value (blank = unset)").
				Value(&p.maxValue).
				Validate(validateOptionalNumber),
			huh.NewConfirm().
				Title("Required").
				Value(&p.required),
			huh.NewInput().
				Title("Description").
				Value(&p.description),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (p *numberPanel) snapshot() editor.Snapshot {
	snap := p.snap
	snap.Settings = snap.Settings.Clone()
	snap.Settings.DecimalPlaces = parseIntDefault(p.decimalPlaces, snap.Settings.DecimalPlaces)
	snap.SetAllowDecimals(p.allowDecimals)
	snap.Settings.Unit = p.unit
	snap.Settings.MinValue = strings.TrimSpace(p.minValue)
	snap.Settings.MaxValue = strings.TrimSpace(p.maxValue)
	snap.Required = p.required
	snap.Description = p.description
	return snap
}

// ── date / time ──────────────────────────────────────────────────────────────

type datePanel struct {
	snap editor.Snapshot

	dateFormat  string
	disablePast bool
	required    bool
	description string
}

func newDatePanel(f domain.Field) *datePanel {
	snap := editor.TakeSnapshot(f)
	return &datePanel{
		snap:        snap,
		dateFormat:  string(snap.Settings.DateFormat),
		disablePast: snap.Settings.DisablePastDates,
		required:    snap.Required,
		description: snap.Description,
	}
}

func (p *datePanel) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Date Format").
				Options(
					huh.NewOption("Date (YYYY-MM-DD)", "date"),
					huh.NewOption("Time (HH:MM)", "time"),
					huh.NewOption("Date and time", "datetime"),
					huh.NewOption("Year only", "year"),
					huh.NewOption("Month and year", "month-year"),
					huh.NewOption("Partial (independent year/month/day)", "partial"),
				).
				Value(&p.dateFormat),
			huh.NewConfirm().
				Title("Disallow Past Dates").
				Value(&p.disablePast),
			huh.NewConfirm().
				Title("Required").
				Value(&p.required),
			huh.NewInput().
				Title("Description").
				Value(&p.description),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (p *datePanel) snapshot() editor.Snapshot {
	snap := p.snap
	snap.Settings = snap.Settings.Clone()
	snap.Settings.DateFormat = domain.DateFormat(p.dateFormat)
	snap.Settings.DisablePastDates = p.disablePast
	snap.Required = p.required
	snap.Description = p.description
	return snap
}

// ── select / radio / checkbox ────────────────────────────────────────────────

type selectionPanel struct {
	snap  editor.Snapshot
	ftype domain.FieldType

	optionsText string
	layout      string
	required    bool
	description string
}

func newSelectionPanel(f domain.Field) *selectionPanel {
	snap := editor.TakeSnapshot(f)
	var lines []string
	for _, opt := range snap.Settings.Options {
		if opt.Value != "" {
			lines = append(lines, fmt.Sprintf("%s = %s", opt.Label, opt.Value))
		} else {
			lines = append(lines, opt.Label)
		}
	}
	return &selectionPanel{
		snap:        snap,
		ftype:       f.Type,
		optionsText: strings.Join(lines, "\n"),
		layout:      string(snap.Settings.Layout),
		required:    snap.Required,
		description: snap.Description,
	}
}

func (p *selectionPanel) form() *huh.Form {
	fields := []huh.Field{
		huh.NewText().
			Title("Options").
			Description("One per line: Label = VALUE (value optional)").
			Value(&p.optionsText),
	}
	// Layout applies to radio/checkbox rendering; selects ignore it.
	if p.ftype != domain.FieldSelect {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Option Layout").
				Options(
					huh.NewOption("Vertical", "vertical"),
					huh.NewOption("Horizontal", "horizontal"),
				).
				Value(&p.layout),
		)
	}
	fields = append(fields,
		huh.NewConfirm().
			Title("Required").
			Value(&p.required),
		huh.NewInput().
			Title("Description").
			Value(&p.description),
	)
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (p *selectionPanel) snapshot() editor.Snapshot {
	snap := p.snap
	snap.Settings = snap.Settings.Clone()
	snap.Settings.Options = parseOptionLines(p.optionsText)
	snap.Settings.Layout = domain.OptionLayout(p.layout)
	snap.Required = p.required
	snap.Description = p.description
	snap.NormalizeOptionValues()
	return snap
}

// parseOptionLines turns the options textarea back into an option list.
// Whitespace-only lines are dropped; a line without "=" is a label-only
// option whose answer identity falls back to the field/index scheme.
func parseOptionLines(text string) []domain.Option {
	var opts []domain.Option
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, value := line, ""
		if idx := strings.Index(line, "="); idx >= 0 {
			label = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		}
		opts = append(opts, domain.Option{Label: label, Value: value})
	}
	return opts
}
