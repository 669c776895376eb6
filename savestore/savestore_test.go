package savestore

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPutAndGet(t *testing.T) {
	st := openStore(t)

	payload := []byte(`{"format":1}`)
	if err := st.Put("cellar", 12, 25, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := st.Get("cellar")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}

func TestPutOverwrites(t *testing.T) {
	st := openStore(t)

	if err := st.Put("main", 1, 0, []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Put("main", 8, 15, []byte("new")); err != nil {
		t.Fatalf("Put again: %v", err)
	}

	got, err := st.Get("main")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}

	slots, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("List returned %d slots, want 1", len(slots))
	}
	if slots[0].Turn != 8 || slots[0].Score != 15 {
		t.Errorf("slot = %+v, want turn 8 score 15", slots[0])
	}
}

func TestGetMissing(t *testing.T) {
	st := openStore(t)

	_, err := st.Get("ghost")
	if err == nil || !strings.Contains(err.Error(), `no save named "ghost"`) {
		t.Errorf("Get(ghost) error = %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := openStore(t)

	if err := st.Put("doomed", 3, 0, []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Delete("doomed"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get("doomed"); err == nil {
		t.Error("Get after Delete succeeded, want error")
	}
	if err := st.Delete("doomed"); err == nil {
		t.Error("second Delete succeeded, want error")
	}
}

func TestList(t *testing.T) {
	st := openStore(t)

	slots, err := st.List()
	if err != nil {
		t.Fatalf("List on empty store: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("empty store listed %d slots", len(slots))
	}

	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := st.Put(name, 1, 0, []byte(name)); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
	}
	slots, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("List returned %d slots, want 3", len(slots))
	}
	seen := map[string]bool{}
	for _, sl := range slots {
		seen[sl.Name] = true
		if sl.SavedAt.IsZero() {
			t.Errorf("slot %s has zero timestamp", sl.Name)
		}
	}
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if !seen[name] {
			t.Errorf("List missing slot %q", name)
		}
	}
}
