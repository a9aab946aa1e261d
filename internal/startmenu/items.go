package startmenu

// Item is an entry of the Start menu. Items with children open a submenu.
type Item struct {
	Action   string
	Label    string
	Icon     string
	Disabled bool
	// Separator draws a divider above the item
	Separator bool
	Children  []Item
}

// HasChildren reports whether the item opens a submenu
func (i Item) HasChildren() bool {
	return len(i.Children) > 0
}

// DefaultItems returns the classic Start menu tree
func DefaultItems() []Item {
	return []Item{
		{Action: "programs", Label: "Programs", Icon: "[P]", Children: []Item{
			{Action: "accessories", Label: "Accessories"},
			{Action: "games", Label: "Games"},
			{Action: "msdos", Label: "MS-DOS Prompt"},
			{Action: "startup", Label: "StartUp"},
		}},
		{Action: "documents", Label: "Documents", Icon: "[D]", Children: []Item{
			{Action: "mydocs", Label: "My Documents"},
			{Action: "empty", Label: "(Empty)", Disabled: true},
		}},
		{Action: "settings", Label: "Settings", Icon: "[S]", Children: []Item{
			{Action: "control-panel", Label: "Control Panel"},
			{Action: "printers", Label: "Printers"},
			{Action: "taskbar", Label: "Taskbar & Start Menu..."},
		}},
		{Action: "find", Label: "Find", Icon: "[F]"},
		{Action: "help", Label: "Help", Icon: "[?]"},
		{Action: "run", Label: "Run...", Icon: "[R]"},
		{Action: "shutdown", Label: "Shut Down...", Icon: "[X]", Separator: true},
	}
}
