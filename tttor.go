// Package tttor expands macros embedded in stored templates.
//
// A macro invocation is a region delimited by a begin and an end marker
// written as HTML comments:
//
//	<!-- macro-begin footer -->anything<!-- macro-end footer -->
//
// Expansion replaces the content between the markers with the body of the
// named macro. Bodies may invoke further macros, which are expanded
// recursively. The markers of the expanded text are kept so the next
// expansion can find the region again; markers inside macro bodies are
// removed.
//
// # Basic Usage
//
//	dict := tttor.Dictionary{"footer": "(c) ACME"}
//	out, err := tttor.Expand("Hi<!-- macro-begin footer --><!-- macro-end footer -->", dict)
//	// out: "Hi<!-- macro-begin footer -->(c) ACME<!-- macro-end footer -->"
//
// # Errors
//
// Malformed markers and reference problems are returned as errors carrying a
// *MacroError:
//
//	var macroErr *tttor.MacroError
//	if errors.As(err, &macroErr) {
//	    fmt.Println(macroErr.Kind) // UnmatchedBegin, UndefinedMacro, CircularReference, ...
//	}
//
// # Template Stores
//
// A Service expands every template of a TemplateStore. Templates whose slug
// starts with the macro prefix ("macro-" by default) define the dictionary:
// "macro-footer" defines the macro "footer". Changed templates can be saved
// as drafts, after a backup of their previous code, and published later.
//
//	store, _ := tttor.OpenStore("filesystem", "/var/lib/tttor/templates")
//	backup, _ := tttor.NewDirectoryBackup("/var/lib/tttor/backups", nil)
//	svc, _ := tttor.NewService(store, backup, nil, nil)
//	report, err := svc.ExpandAll(ctx, tttor.ExpandRequest{SaveDrafts: true})
package tttor
