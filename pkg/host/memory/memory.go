// Package memory implements the host interfaces in process. It backs the
// scenario simulator and the tests of every package that needs an editor.
package memory

import (
	"sync"

	"github.com/kcaldas/tabslimiter/pkg/host"
)

// Document is an in-memory editor buffer
type Document struct {
	mu       sync.RWMutex
	id       int
	fileName string
	dirty    bool
	loading  bool
}

func (d *Document) ID() int { return d.id }

func (d *Document) FileName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fileName
}

func (d *Document) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

func (d *Document) IsLoading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// SetDirty marks the buffer as modified (or clean)
func (d *Document) SetDirty(dirty bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = dirty
}

// SetLoading toggles the loading flag
func (d *Document) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = loading
}

// SaveAs gives the buffer a backing file and clears the dirty flag.
func (d *Document) SaveAs(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fileName = path
	d.dirty = false
}

type slot struct {
	doc     *Document
	group   int
	preview bool
}

// Window keeps its documents in the order they were opened.
type Window struct {
	mu          sync.RWMutex
	groups      int
	activeGroup int
	slots       []*slot
	active      *Document
	closed      []int
}

func newWindow(groups int) *Window {
	if groups < 1 {
		groups = 1
	}
	return &Window{groups: groups}
}

func (w *Window) ActiveGroup() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeGroup
}

func (w *Window) DocumentsInGroup(group int) []host.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var docs []host.Document
	for _, s := range w.slots {
		if s.group == group {
			docs = append(docs, s.doc)
		}
	}
	return docs
}

func (w *Window) Documents() []host.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	docs := make([]host.Document, 0, len(w.slots))
	for g := 0; g < w.groups; g++ {
		for _, s := range w.slots {
			if s.group == g {
				docs = append(docs, s.doc)
			}
		}
	}
	return docs
}

func (w *Window) ActiveDocument() host.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active == nil {
		return nil
	}
	return w.active
}

func (w *Window) IsPreview(doc host.Document) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.find(doc.ID())
	return s == nil || s.preview
}

// Close focuses doc, closes it and hands focus back to whatever was active
// before.
func (w *Window) Close(doc host.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	previous := w.active
	if s := w.find(doc.ID()); s != nil {
		w.active = s.doc
	}
	if !w.remove(doc.ID()) {
		return
	}
	w.closed = append(w.closed, doc.ID())
	if previous != nil && previous.ID() != doc.ID() {
		w.active = previous
	} else {
		w.active = nil
	}
}

// Open adds doc as a regular tab at the end of group.
func (w *Window) Open(group int, doc *Document) {
	w.place(group, doc, false)
}

// OpenPreview shows doc over group without giving it a tab.
func (w *Window) OpenPreview(group int, doc *Document) {
	w.place(group, doc, true)
}

// Pin turns a preview into a regular tab. It reports false if doc is not
// in the window.
func (w *Window) Pin(doc *Document) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.find(doc.ID())
	if s == nil {
		return false
	}
	s.preview = false
	return true
}

// Activate focuses doc and the group it lives in. Documents outside the
// window (such as the search results panel) only take focus.
func (w *Window) Activate(doc *Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = doc
	if s := w.find(doc.ID()); s != nil {
		w.activeGroup = s.group
	}
}

// FocusGroup makes group the active group without changing the focused
// document.
func (w *Window) FocusGroup(group int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if group >= 0 && group < w.groups {
		w.activeGroup = group
	}
}

// Remove closes doc on behalf of the user. It reports whether doc was open.
func (w *Window) Remove(doc *Document) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.remove(doc.ID()) {
		return false
	}
	if w.active != nil && w.active.ID() == doc.ID() {
		w.active = nil
	}
	return true
}

// Closed returns the ids closed through Close, in order.
func (w *Window) Closed() []int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]int, len(w.closed))
	copy(out, w.closed)
	return out
}

// IDs returns the ids of every open document in window order.
func (w *Window) IDs() []int {
	docs := w.Documents()
	ids := make([]int, len(docs))
	for i, d := range docs {
		ids[i] = d.ID()
	}
	return ids
}

func (w *Window) place(group int, doc *Document, preview bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if group < 0 || group >= w.groups {
		group = w.activeGroup
	}
	if s := w.find(doc.ID()); s != nil {
		s.group = group
		s.preview = preview
		return
	}
	w.slots = append(w.slots, &slot{doc: doc, group: group, preview: preview})
}

func (w *Window) find(id int) *slot {
	for _, s := range w.slots {
		if s.doc.ID() == id {
			return s
		}
	}
	return nil
}

func (w *Window) remove(id int) bool {
	for i, s := range w.slots {
		if s.doc.ID() == id {
			w.slots = append(w.slots[:i], w.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Host is a single-window editor. Document ids start right after the id
// reserved for the search results panel.
type Host struct {
	mu            sync.Mutex
	window        *Window
	searchResults *Document
	nextID        int
	docs          map[int]*Document
}

// NewHost creates a host with one window split into groups.
func NewHost(groups int) *Host {
	return &Host{
		window:        newWindow(groups),
		searchResults: &Document{id: host.SearchResultsID},
		nextID:        host.SearchResultsID + 1,
		docs:          make(map[int]*Document),
	}
}

func (h *Host) ActiveWindow() host.Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.window == nil {
		return nil
	}
	return h.window
}

// Window returns the concrete window for direct manipulation.
func (h *Host) Window() *Window {
	return h.window
}

// SearchResults returns the "find in files" results panel.
func (h *Host) SearchResults() *Document {
	return h.searchResults
}

// NewDocument allocates a buffer. An empty path creates an unsaved buffer.
func (h *Host) NewDocument(path string) *Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	d := &Document{id: h.nextID, fileName: path}
	h.nextID++
	h.docs[d.id] = d
	return d
}

// Document looks up a buffer by id, including the search results panel.
func (h *Host) Document(id int) (*Document, bool) {
	if id == host.SearchResultsID {
		return h.searchResults, true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.docs[id]
	return d, ok
}
