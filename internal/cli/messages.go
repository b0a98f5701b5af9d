package cli

import tea "github.com/charmbracelet/bubbletea"

// pushViewMsg pushes a view onto the navigation stack.
type pushViewMsg struct{ view View }

// popViewMsg pops the top view off the stack.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to re-read shared state,
// broadcast after mutations made in views above them.
type refreshViewMsg struct{}

// noticeMsg shows a transient notification line (save results, errors).
type noticeMsg struct {
	text  string
	isErr bool
}

// wizardCompleteMsg pops a wizard view and runs its follow-up command.
type wizardCompleteMsg struct{ nextCmd tea.Cmd }

// saveDoneMsg reports the outcome of an in-flight save transaction.
type saveDoneMsg struct{ err error }

// scrollToFieldMsg asks the preview to scroll to and focus a field,
// the side effect the preview engine emits on jump-to-field.
type scrollToFieldMsg struct{ fieldID string }

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}
