package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcaldas/tabslimiter/pkg/host"
)

func TestHost_NewDocumentSkipsSearchResultsID(t *testing.T) {
	h := NewHost(1)

	d := h.NewDocument("")
	assert.Equal(t, host.SearchResultsID+1, d.ID())
	assert.Equal(t, host.SearchResultsID, h.SearchResults().ID())

	found, ok := h.Document(d.ID())
	assert.True(t, ok)
	assert.Same(t, d, found)

	results, ok := h.Document(host.SearchResultsID)
	assert.True(t, ok)
	assert.Same(t, h.SearchResults(), results)
}

func TestWindow_GroupsAndOrder(t *testing.T) {
	h := NewHost(2)
	w := h.Window()
	a, b, c := h.NewDocument("/a"), h.NewDocument("/b"), h.NewDocument("/c")

	w.Open(1, a)
	w.Open(0, b)
	w.Open(1, c)

	assert.Len(t, w.DocumentsInGroup(1), 2)
	assert.Len(t, w.DocumentsInGroup(0), 1)
	// window order walks groups in index order
	assert.Equal(t, []int{b.ID(), a.ID(), c.ID()}, w.IDs())
}

func TestWindow_PreviewAndPin(t *testing.T) {
	h := NewHost(1)
	w := h.Window()
	d := h.NewDocument("/found.go")

	w.OpenPreview(0, d)
	assert.True(t, w.IsPreview(d))
	assert.Len(t, w.DocumentsInGroup(0), 1)

	assert.True(t, w.Pin(d))
	assert.False(t, w.IsPreview(d))
	assert.False(t, w.Pin(h.NewDocument("")))
}

func TestWindow_IsPreviewForForeignDocument(t *testing.T) {
	h := NewHost(1)
	assert.True(t, h.Window().IsPreview(h.SearchResults()))
}

func TestWindow_ActivateFocusesGroup(t *testing.T) {
	h := NewHost(2)
	w := h.Window()
	d := h.NewDocument("")
	w.Open(1, d)

	w.Activate(d)

	assert.Equal(t, 1, w.ActiveGroup())
	assert.Equal(t, d.ID(), w.ActiveDocument().ID())

	w.Activate(h.SearchResults())
	assert.Equal(t, 1, w.ActiveGroup())
	assert.Equal(t, host.SearchResultsID, w.ActiveDocument().ID())
}

func TestWindow_FocusGroupIgnoresOutOfRange(t *testing.T) {
	w := NewHost(2).Window()
	w.FocusGroup(1)
	w.FocusGroup(5)
	assert.Equal(t, 1, w.ActiveGroup())
}

func TestWindow_CloseRestoresFocus(t *testing.T) {
	h := NewHost(1)
	w := h.Window()
	a, b := h.NewDocument("/a"), h.NewDocument("/b")
	w.Open(0, a)
	w.Open(0, b)
	w.Activate(b)

	w.Close(a)

	assert.Equal(t, []int{b.ID()}, w.IDs())
	assert.Equal(t, []int{a.ID()}, w.Closed())
	assert.Equal(t, b.ID(), w.ActiveDocument().ID())

	// closing something not open is a no-op
	w.Close(a)
	assert.Equal(t, []int{a.ID()}, w.Closed())
}

func TestWindow_RemoveClearsActive(t *testing.T) {
	h := NewHost(1)
	w := h.Window()
	a := h.NewDocument("")
	w.Open(0, a)
	w.Activate(a)

	assert.True(t, w.Remove(a))
	assert.Nil(t, w.ActiveDocument())
	assert.False(t, w.Remove(a))
	assert.Empty(t, w.Closed())
}

func TestDocument_Flags(t *testing.T) {
	d := NewHost(1).NewDocument("")

	d.SetDirty(true)
	d.SetLoading(true)
	assert.True(t, d.IsDirty())
	assert.True(t, d.IsLoading())

	d.SaveAs("/saved.txt")
	assert.False(t, d.IsDirty())
	assert.Equal(t, "/saved.txt", d.FileName())
}
