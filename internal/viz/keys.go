package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Stop       key.Binding
	Regenerate key.Binding
	NextAlgo   key.Binding
	PrevAlgo   key.Binding
	Smaller    key.Binding
	Larger     key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Shape      key.Binding
	Language   key.Binding
	Theme      key.Binding
	Chart      key.Binding
	View       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Regenerate, k.NextAlgo, k.Faster, k.Slower, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Regenerate},
		{k.NextAlgo, k.PrevAlgo, k.Smaller, k.Larger, k.Shape},
		{k.Faster, k.Slower},
		{k.Language, k.Theme, k.Chart, k.View},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter/s", "start"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "new array"),
	),
	NextAlgo: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next algorithm"),
	),
	PrevAlgo: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev algorithm"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "smaller"),
	),
	Larger: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "larger"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Shape: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "array shape"),
	),
	Language: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "code language"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Chart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complexity chart"),
	),
	View: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "compact view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
