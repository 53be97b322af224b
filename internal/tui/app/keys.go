package app

import "github.com/charmbracelet/bubbles/key"

// keyMap горячие клавиши главного экрана
type keyMap struct {
	Shuffle    key.Binding
	Restore    key.Binding
	Previous   key.Binding
	Toggle     key.Binding
	Next       key.Binding
	Back       key.Binding
	Forward    key.Binding
	SeekTo     key.Binding
	Open       key.Binding
	PlayChosen key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "перемешать"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "восстановить сессию"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "предыдущий"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("пробел", "пауза"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "следующий"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "назад"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "вперед"),
		),
		SeekTo: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "перейти к 0-90%"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "открыть"),
		),
		PlayChosen: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "играть выбранный"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "справка"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "выход"),
		),
	}
}

// ShortHelp реализует help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Shuffle, k.Toggle, k.Previous, k.Next, k.Help, k.Quit}
}

// FullHelp реализует help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Shuffle, k.Restore, k.PlayChosen},
		{k.Toggle, k.Previous, k.Next},
		{k.Back, k.Forward, k.SeekTo},
		{k.Help, k.Quit},
	}
}
