package cli

import (
	"testing"

	"github.com/tbeaumont/crfstudio/internal/repository"
	"github.com/tbeaumont/crfstudio/internal/service"
	"github.com/tbeaumont/crfstudio/internal/teatest"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

// TestDriver wraps teatest.Driver with builder-specific inspection of
// appModel internals (view stack, shared state).
type TestDriver struct {
	*teatest.Driver
}

// newTestApp wires an App against an in-memory database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &App{
		Studies:       service.NewStudyService(repository.NewSQLiteStudyRepo(database)),
		Forms:         service.NewFormService(repository.NewSQLiteFormRepo(database), testutil.NewTestUoW(database)),
		IsInteractive: func() bool { return true },
	}
}

// NewTestDriver constructs the appModel, sets terminal size, and drains
// Init() (which loads the study list synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Notice returns the transient notification line.
func (d *TestDriver) Notice() string {
	return d.appModel().notice
}

// IsQuitting reports whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CreateStudy drives the new-study wizard from the study list.
func (d *TestDriver) CreateStudy(protocol, name string) {
	d.T.Helper()
	d.PressKey('a')
	d.Type(protocol)
	d.PressEnter()
	d.Type(name)
	d.PressEnter()
}

// OpenFirstStudy selects and opens the first study in the list.
func (d *TestDriver) OpenFirstStudy() {
	d.T.Helper()
	d.PressEnter()
}

// AddVisit drives the new-visit wizard from the visit list.
func (d *TestDriver) AddVisit(title string) {
	d.T.Helper()
	d.PressKey('a')
	d.Type(title)
	d.PressEnter()
}

// AddSection drives the new-section wizard from the section editor.
func (d *TestDriver) AddSection(title string) {
	d.T.Helper()
	d.PressKey('A')
	d.Type(title)
	d.PressEnter()
}

// AddField drives the new-field wizard from the section editor,
// accepting the default "text" type.
func (d *TestDriver) AddField(name, label string) {
	d.T.Helper()
	d.PressKey('a')
	d.Type(name)
	d.PressEnter()
	d.Type(label)
	d.PressEnter()
	d.PressEnter() // confirm type select at its default
}
