package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/passman/internal/passgen"
)

// updateNoteEditScreen обрабатывает форму добавления/редактирования заметки.
func (m *model) updateNoteEditScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyGenerate {
		password, err := passgen.Generate(passgen.DefaultLength)
		if err != nil {
			slog.Error("Ошибка генерации пароля", "error", err)
			m.errText = "Не удалось сгенерировать пароль"
			return m, nil
		}
		m.noteInputs[noteFieldPassword].SetValue(password)
		m.passwordStrength = passgen.Rate(password)
		return m, nil
	}

	submitAction := func() (tea.Model, tea.Cmd) {
		note := *m.editingNote
		note.NoteText = m.noteInputs[noteFieldText].Value()
		note.Username = m.noteInputs[noteFieldUsername].Value()
		note.Password = m.noteInputs[noteFieldPassword].Value()
		if note.NoteText == "" {
			m.errText = "Текст заметки не может быть пустым"
			return m, nil
		}
		cmd := m.submitNoteCmd(note)
		model, statusCmd := m.setStatusMessage("Сохранение заметки...")
		return model, tea.Batch(cmd, statusCmd)
	}

	inputs := make([]*textinput.Model, numNoteFields)
	for i := range m.noteInputs {
		inputs[i] = &m.noteInputs[i]
	}
	newModel, cmd := m.handleFormInput(msg, inputs, &m.noteFocusedField, submitAction, notesListScreen)

	// Оценка стойкости следует за полем пароля
	m.passwordStrength = passgen.Rate(m.noteInputs[noteFieldPassword].Value())
	return newModel, cmd
}

// viewNoteEditScreen отображает форму заметки.
func (m *model) viewNoteEditScreen() string {
	title := "Новая заметка"
	if m.editingNote != nil && !m.editingNote.IsNew() {
		title = "Редактирование заметки"
	}
	return m.viewFormScreen(title, m.noteInputs, "Стойкость пароля: "+m.passwordStrength.String())
}
