package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// viewFormScreen отображает общий экран формы: заголовок, поля и
// дополнительная строка (например, оценка стойкости пароля).
// Ошибки и справка рендерятся общим подвалом в View.
func (m *model) viewFormScreen(title string, inputs []textinput.Model, extra string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for _, input := range inputs {
		b.WriteString(input.View() + "\n")
	}
	if extra != "" {
		b.WriteString("\n" + subtleStyle.Render(extra) + "\n")
	}
	return b.String()
}
