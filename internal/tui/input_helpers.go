package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// focusFormField переводит фокус на поле idx, снимая его с остальных.
func focusFormField(inputs []*textinput.Model, idx int) tea.Cmd {
	for i, input := range inputs {
		if i == idx {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	return textinput.Blink
}

// handleFormKeys обрабатывает Tab, Shift+Tab и Enter в форме из нескольких
// полей. Возвращает модель, команду и флаг, была ли клавиша обработана.
// Enter на последнем поле вызывает onSubmit, на остальных — переводит фокус.
func (m *model) handleFormKeys(
	keyMsg tea.KeyMsg,
	inputs []*textinput.Model,
	focusedFieldIdx *int,
	onSubmit func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd, bool) {
	n := len(inputs)
	switch keyMsg.String() {
	case keyTab:
		*focusedFieldIdx = (*focusedFieldIdx + 1) % n
		return m, focusFormField(inputs, *focusedFieldIdx), true
	case keyShiftTab:
		*focusedFieldIdx = (*focusedFieldIdx + n - 1) % n
		return m, focusFormField(inputs, *focusedFieldIdx), true
	case keyEnter:
		if *focusedFieldIdx < n-1 {
			*focusedFieldIdx++
			return m, focusFormField(inputs, *focusedFieldIdx), true
		}
		model, cmd := onSubmit()
		return model, cmd, true
	default:
		return m, nil, false
	}
}

// handleFormInput обрабатывает ввод в форме: Esc возвращает на escState,
// Tab/Enter управляют фокусом и отправкой, остальное уходит в активное поле.
func (m *model) handleFormInput(
	msg tea.Msg,
	inputs []*textinput.Model,
	focusedFieldIdx *int,
	onSubmit func() (tea.Model, tea.Cmd),
	escState screenState,
) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == keyEsc {
			m.state = escState
			m.errText = ""
			for _, input := range inputs {
				input.Blur()
			}
			return m, tea.ClearScreen
		}

		newModel, keyCmd, handled := m.handleFormKeys(keyMsg, inputs, focusedFieldIdx, onSubmit)
		if handled {
			return newModel, keyCmd
		}
	}

	// Не управляющая клавиша — обновляем активное поле ввода
	activeInput := inputs[*focusedFieldIdx]
	var cmd tea.Cmd
	*activeInput, cmd = activeInput.Update(msg)
	return m, cmd
}
