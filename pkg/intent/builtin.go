package intent

// Builtin returns a registry pre-loaded with the standard intents.
// Deliberately minimal; callers register project-specific intents on top.
func Builtin() *Registry {
	r := New()
	for _, in := range builtinIntents {
		if err := r.Register(in); err != nil {
			panic(err)
		}
	}
	return r
}

var builtinIntents = []Intent{
	{
		ID:          "create_new",
		Category:    CategoryFile,
		Label:       "Create New",
		Description: "Create a new document, file, project, or equivalent entity.",
		Synonyms:    []string{"new", "new file", "new document", "create", "add new"},
	},
	{
		ID:          "open",
		Category:    CategoryFile,
		Label:       "Open",
		Description: "Open an existing document, file, project, or resource.",
		Synonyms:    []string{"open file", "open project", "load", "browse..."},
	},
	{
		ID:          "save",
		Category:    CategoryFile,
		Label:       "Save",
		Description: "Save the current state of the document or project.",
		Synonyms:    []string{"save file", "save changes"},
	},
	{
		ID:          "save_as",
		Category:    CategoryFile,
		Label:       "Save As",
		Description: "Save the current document or project under a new name or location.",
		Synonyms:    []string{"save copy", "duplicate", "export copy"},
	},
	{
		ID:          "export",
		Category:    CategoryExport,
		Label:       "Export",
		Description: "Export the current content to another format or target.",
		Synonyms:    []string{"export as", "export file", "render", "publish"},
	},
	{
		ID:          "import",
		Category:    CategoryImport,
		Label:       "Import",
		Description: "Import external data or files into the current project.",
		Synonyms:    []string{"load data", "add from file", "bring in"},
	},
	{
		ID:          "undo",
		Category:    CategoryEdit,
		Label:       "Undo",
		Description: "Revert the last action.",
		Synonyms:    []string{"undo last action"},
	},
	{
		ID:          "redo",
		Category:    CategoryEdit,
		Label:       "Redo",
		Description: "Re-apply the last undone action.",
		Synonyms:    []string{"redo last action"},
	},
	{
		ID:          "delete",
		Category:    CategoryEdit,
		Label:       "Delete",
		Description: "Remove the selected item or content.",
		Synonyms:    []string{"remove", "erase", "trash"},
	},
	{
		ID:          "search",
		Category:    CategoryNavigation,
		Label:       "Search",
		Description: "Search within the current context or data set.",
		Synonyms:    []string{"find", "find and replace", "lookup"},
	},
	{
		ID:          "print",
		Category:    CategoryFile,
		Label:       "Print",
		Description: "Print or generate a print-ready representation.",
		Synonyms:    []string{"print document", "print file"},
	},
	{
		ID:          "settings",
		Category:    CategorySettings,
		Label:       "Settings",
		Description: "Open settings, preferences, or configuration.",
		Synonyms:    []string{"preferences", "options", "configuration"},
	},
	{
		ID:          "help",
		Category:    CategoryHelp,
		Label:       "Help",
		Description: "Open help, documentation, or support resources.",
		Synonyms:    []string{"documentation", "support", "help center"},
	},
}
