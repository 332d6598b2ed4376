package ontology

// Builtin returns a registry pre-loaded with the standard role and pattern
// vocabulary. Callers may register further terms on top.
func Builtin() *Registry {
	r := New()
	for _, role := range builtinRoles {
		if err := r.RegisterRole(role); err != nil {
			panic(err)
		}
	}
	for _, p := range builtinPatterns {
		if err := r.RegisterPattern(p); err != nil {
			panic(err)
		}
	}
	return r
}

var builtinRoles = []Role{
	{
		ID:           "button",
		Label:        "Button",
		Description:  "Clickable control that triggers an action.",
		Aliases:      []string{"push button", "btn"},
		ExternalRefs: map[string]string{"aria-role": "button"},
		Category:     CategoryInteractive,
	},
	{
		ID:           "link",
		Label:        "Link",
		Description:  "Navigational element that moves focus to another resource or view.",
		Aliases:      []string{"hyperlink"},
		ExternalRefs: map[string]string{"aria-role": "link"},
		Category:     CategoryNavigation,
	},
	{
		ID:           "menu",
		Label:        "Menu",
		Description:  "Container for a list of choices or commands.",
		Aliases:      []string{"menu bar", "context menu"},
		ExternalRefs: map[string]string{"aria-role": "menu"},
		Category:     CategoryContainer,
	},
	{
		ID:           "menuitem",
		Label:        "Menu Item",
		Description:  "Choice within a menu that can be activated.",
		Aliases:      []string{"menu item"},
		ExternalRefs: map[string]string{"aria-role": "menuitem"},
		Category:     CategoryInteractive,
	},
	{
		ID:           "textbox",
		Label:        "Text Box",
		Description:  "Editable text input field.",
		Aliases:      []string{"text field", "input"},
		ExternalRefs: map[string]string{"aria-role": "textbox"},
		Category:     CategoryInput,
	},
	{
		ID:           "checkbox",
		Label:        "Checkbox",
		Description:  "Binary on/off option, typically square with a check mark.",
		Aliases:      []string{"check box"},
		ExternalRefs: map[string]string{"aria-role": "checkbox"},
		Category:     CategoryInput,
	},
	{
		ID:           "radiobutton",
		Label:        "Radio Button",
		Description:  "Single-choice option among a group of mutually exclusive options.",
		Aliases:      []string{"radio button", "radio"},
		ExternalRefs: map[string]string{"aria-role": "radio"},
		Category:     CategoryInput,
	},
	{
		ID:           "dialog",
		Label:        "Dialog",
		Description:  "Top-level window used to prompt the user for interaction.",
		Aliases:      []string{"dialog box"},
		ExternalRefs: map[string]string{"aria-role": "dialog"},
		Category:     CategoryContainer,
	},
	{
		ID:           "alert",
		Label:        "Alert",
		Description:  "High-priority message that interrupts the user's workflow.",
		Aliases:      []string{"alert dialog"},
		ExternalRefs: map[string]string{"aria-role": "alert"},
		Category:     CategoryFeedback,
	},
	{
		ID:           "status",
		Label:        "Status",
		Description:  "Non-interruptive status or progress information.",
		Aliases:      []string{"status bar"},
		ExternalRefs: map[string]string{"aria-role": "status"},
		Category:     CategoryFeedback,
	},
	{
		ID:           "toolbar",
		Label:        "Toolbar",
		Description:  "Collection of commonly used controls grouped together.",
		Aliases:      []string{"tool bar"},
		ExternalRefs: map[string]string{"aria-role": "toolbar"},
		Category:     CategoryContainer,
	},
	{
		ID:           "tab",
		Label:        "Tab",
		Description:  "Control used to switch between views in a tabbed interface.",
		Aliases:      []string{"tab header"},
		ExternalRefs: map[string]string{"aria-role": "tab"},
		Category:     CategoryNavigation,
	},
	{
		ID:           "tabpanel",
		Label:        "Tab Panel",
		Description:  "Container for the content associated with a tab.",
		Aliases:      []string{"tab panel"},
		ExternalRefs: map[string]string{"aria-role": "tabpanel"},
		Category:     CategoryContainer,
	},
	{
		ID:           "list",
		Label:        "List",
		Description:  "Container for a linear list of items.",
		Aliases:      []string{"listbox"},
		ExternalRefs: map[string]string{"aria-role": "list"},
		Category:     CategoryContainer,
	},
	{
		ID:           "listitem",
		Label:        "List Item",
		Description:  "Item within a list.",
		Aliases:      []string{"list item"},
		ExternalRefs: map[string]string{"aria-role": "listitem"},
		Category:     CategoryStructural,
	},
	{
		ID:           "table",
		Label:        "Table",
		Description:  "Grid of rows and columns for displaying data.",
		Aliases:      []string{"grid"},
		ExternalRefs: map[string]string{"aria-role": "table"},
		Category:     CategoryContainer,
	},
	{
		ID:           "row",
		Label:        "Row",
		Description:  "Horizontal grouping of cells in a table.",
		Aliases:      []string{"table row"},
		ExternalRefs: map[string]string{"aria-role": "row"},
		Category:     CategoryStructural,
	},
	{
		ID:           "cell",
		Label:        "Cell",
		Description:  "Intersection of a row and column in a table.",
		Aliases:      []string{"table cell"},
		ExternalRefs: map[string]string{"aria-role": "cell"},
		Category:     CategoryStructural,
	},
	{
		ID:           "image",
		Label:        "Image",
		Description:  "Static image or icon.",
		Aliases:      []string{"img", "icon"},
		ExternalRefs: map[string]string{"aria-role": "img"},
		Category:     CategoryOther,
	},
	{
		ID:           "slider",
		Label:        "Slider",
		Description:  "Input control for choosing a value from a continuous or discrete range.",
		Aliases:      []string{"range slider"},
		ExternalRefs: map[string]string{"aria-role": "slider"},
		Category:     CategoryInput,
	},
	{
		ID:           "progressbar",
		Label:        "Progress Bar",
		Description:  "Visual indicator of task progress.",
		Aliases:      []string{"progress"},
		ExternalRefs: map[string]string{"aria-role": "progressbar"},
		Category:     CategoryFeedback,
	},
}

var builtinPatterns = []Pattern{
	{
		ID:           "modal_dialog",
		Label:        "Modal Dialog",
		Description:  "Dialog that blocks interaction with the rest of the interface until dismissed.",
		Aliases:      []string{"modal", "popup dialog"},
		TypicalRoles: []string{"dialog", "button"},
	},
	{
		ID:           "toast_notification",
		Label:        "Toast Notification",
		Description:  "Transient message overlay that appears and disappears automatically.",
		Aliases:      []string{"toast", "snackbar"},
		TypicalRoles: []string{"status"},
	},
	{
		ID:           "hamburger_menu",
		Label:        "Hamburger Menu",
		Description:  "Collapsible navigation menu typically opened from an icon with three horizontal lines.",
		Aliases:      []string{"nav drawer", "navigation drawer"},
		TypicalRoles: []string{"menu", "button"},
	},
	{
		ID:           "wizard_step",
		Label:        "Wizard Step",
		Description:  "Step in a multi-step guided workflow (wizard).",
		Aliases:      []string{"step wizard", "setup wizard step"},
		TypicalRoles: []string{"button", "progressbar"},
	},
	{
		ID:           "toolbar_group",
		Label:        "Toolbar Group",
		Description:  "Cluster of related controls inside a toolbar.",
		Aliases:      []string{"tool group"},
		TypicalRoles: []string{"toolbar", "button"},
	},
	{
		ID:           "navigation_bar",
		Label:        "Navigation Bar",
		Description:  "Primary navigation area, often at the top or side of an application.",
		Aliases:      []string{"navbar", "app bar"},
		TypicalRoles: []string{"link", "button"},
	},
	{
		ID:           "sidebar",
		Label:        "Sidebar",
		Description:  "Secondary panel anchored to the left or right side of the main content.",
		Aliases:      []string{"side panel", "drawer"},
		TypicalRoles: []string{"list", "button"},
	},
}
