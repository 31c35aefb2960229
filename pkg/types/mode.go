package types

// Mode represents the current input mode of the TUI
type Mode int

const (
	// Normal is the default mode for moving around screens and folders
	Normal Mode = iota
	// Search routes keystrokes into the search box
	Search
	// Command is the mode for entering : commands
	Command
	// Menu is active while a context menu is open
	Menu
)

func (m Mode) String() string {
	switch m {
	case Search:
		return "SEARCH"
	case Command:
		return "COMMAND"
	case Menu:
		return "MENU"
	default:
		return "NORMAL"
	}
}
