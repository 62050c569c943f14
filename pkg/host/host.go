// Package host describes the slice of an editor's object model the tab
// limiter needs. Editors adapt their own window and view types to these
// interfaces; nothing here depends on a concrete editor.
package host

// SearchResultsID is the view id the editor reserves for its
// "find in files" results panel.
const SearchResultsID = 2

// NoGroup is the group index reported for a document that is not placed
// in any group, i.e. a preview.
const NoGroup = -1

// Document is an open buffer as seen by the limiter
type Document interface {
	// ID is stable for the lifetime of the buffer. Ids may be reused once
	// the buffer is closed.
	ID() int
	// FileName returns the backing file path, or "" for unsaved buffers.
	FileName() string
	IsDirty() bool
	IsLoading() bool
}

// Window is a single editor window holding groups of tabs
type Window interface {
	ActiveGroup() int
	DocumentsInGroup(group int) []Document
	Documents() []Document
	// ActiveDocument may return nil when the window has no focused buffer.
	ActiveDocument() Document
	// IsPreview reports whether doc is shown transiently without a tab.
	IsPreview(doc Document) bool
	// Close focuses doc and then closes it.
	Close(doc Document)
}

// Host gives access to the editor's windows
type Host interface {
	// ActiveWindow may return nil when no window is open.
	ActiveWindow() Window
}
