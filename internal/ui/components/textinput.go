package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput. Numeric inputs accept digits and one
// decimal point.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
}

// NewTextInput creates an unfocused input.
func NewTextInput(placeholder string, numeric bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	return TextInput{Model: ti, Numeric: numeric}
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update filters keys for numeric inputs and forwards the rest.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.Numeric {
		key := kmsg.String()
		if len(key) == 1 && !isNumericKey(key[0], t.Model.Value()) {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func isNumericKey(c byte, current string) bool {
	if c == '.' {
		return !strings.Contains(current, ".")
	}
	return c >= '0' && c <= '9'
}

// View renders the input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the trimmed input.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Float parses the input, returning def when it is empty or invalid.
func (t TextInput) Float(def float64) float64 {
	f, err := strconv.ParseFloat(t.Value(), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
