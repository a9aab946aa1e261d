package dialog

// Choice is an answer of the Shut Down dialog
type Choice int

const (
	ChoiceShutDown Choice = iota
	ChoiceRestart
	ChoiceLogOff
)

func (c Choice) String() string {
	switch c {
	case ChoiceShutDown:
		return "shutdown"
	case ChoiceRestart:
		return "restart"
	case ChoiceLogOff:
		return "logoff"
	default:
		return "unknown"
	}
}

// ShowRun opens the Run dialog. onRun receives the typed command when OK
// is pressed.
func (m *Manager) ShowRun(onRun func(cmd string), onBrowse func()) *Dialog {
	d := &Dialog{
		Title: "Run",
		Body: []string{
			"Type the name of a program, folder, document, or Internet",
			"resource, and Windows will open it for you.",
		},
		InputLabel: "Open:",
		HasInput:   true,
	}
	d.Buttons = []Button{
		{Label: "OK", Action: func() {
			cmd := d.Input
			m.finish()
			if onRun != nil {
				onRun(cmd)
			}
		}},
		{Label: "Cancel", Action: m.Close},
		{Label: "Browse...", Action: onBrowse},
	}
	m.Show(d)
	return d
}

// ShowShutDown opens the Shut Down dialog
func (m *Manager) ShowShutDown(onChoice func(Choice), onHelp func()) *Dialog {
	d := &Dialog{
		Title: "Shut Down Windows",
		Body:  []string{"What do you want the computer to do?"},
		Choices: []string{
			"Shut down the computer?",
			"Restart the computer?",
			"Close all programs and log on as a different user?",
		},
	}
	d.Buttons = []Button{
		{Label: "Yes", Action: func() {
			choice := Choice(d.Choice)
			m.finish()
			if onChoice != nil {
				onChoice(choice)
			}
		}},
		{Label: "No", Action: m.Close},
		{Label: "Help", Action: onHelp},
	}
	m.Show(d)
	return d
}

// ShowConfirm asks a yes/no question. Dismissing the dialog any other way
// answers no.
func (m *Manager) ShowConfirm(title, msg string, onResult func(bool)) *Dialog {
	answer := func(ok bool) {
		if onResult != nil {
			onResult(ok)
		}
	}

	d := &Dialog{
		Title:     title,
		Body:      []string{msg},
		onDismiss: func() { answer(false) },
	}
	d.Buttons = []Button{
		{Label: "Yes", Action: func() {
			m.finish()
			answer(true)
		}},
		{Label: "No", Action: m.Close},
	}
	m.Show(d)
	return d
}
