package register

import (
	"errors"
	"reflect"
	"testing"
)

func TestWriteThenReadPreservesOrder(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"empty", []string{}},
		{"single", []string{"one"}},
		{"several", []string{"one", "two", "three"}},
		{"multiline", []string{"a\nb", "", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newMockEditor()
			r := New(nil)

			if err := r.Write('a', ed, tt.values); err != nil {
				t.Fatalf("Write() error = %v", err)
			}

			values, ok := r.Read('a', ed)
			if !ok {
				t.Fatal("Read() ok = false")
			}
			if got := values.Slice(); !reflect.DeepEqual(got, tt.values) {
				t.Errorf("Read() = %q, want %q", got, tt.values)
			}
			if values.Len() != len(tt.values) {
				t.Errorf("Len() = %d, want %d", values.Len(), len(tt.values))
			}
		})
	}
}

func TestWriteDoesNotAliasCallerSlice(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)

	values := []string{"x", "y"}
	if err := r.Write('a', ed, values); err != nil {
		t.Fatal(err)
	}
	values[0] = "changed"

	got, _ := r.Read('a', ed)
	if want := []string{"x", "y"}; !reflect.DeepEqual(got.Slice(), want) {
		t.Errorf("Read() = %q, want %q", got.Slice(), want)
	}
}

func TestPushToUnusedNameActsAsWrite(t *testing.T) {
	ed := newMockEditor()
	pushed := New(nil)
	written := New(nil)

	if err := pushed.Push('q', ed, "value"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := written.Write('q', ed, []string{"value"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	a, _ := pushed.Read('q', ed)
	b, _ := written.Read('q', ed)
	if !reflect.DeepEqual(a.Slice(), b.Slice()) {
		t.Errorf("Push read %q, Write read %q", a.Slice(), b.Slice())
	}

	regA, _ := pushed.Get('q')
	regB, _ := written.Get('q')
	if regA.Preview() != regB.Preview() {
		t.Errorf("previews differ: %q vs %q", regA.Preview(), regB.Preview())
	}
}

func TestPushIsMostRecentFirst(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)

	if err := r.Write('h', ed, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Push('h', ed, "a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Push('h', ed, "b"); err != nil {
		t.Fatal(err)
	}

	values, _ := r.Read('h', ed)
	if want := []string{"b", "a"}; !reflect.DeepEqual(values.Slice(), want) {
		t.Errorf("Read() = %q, want %q", values.Slice(), want)
	}
}

func TestPushAfterWriteGoesFirst(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)

	_ = r.Write('h', ed, []string{"x", "y"})
	_ = r.Push('h', ed, "z")

	values, _ := r.Read('h', ed)
	if want := []string{"z", "x", "y"}; !reflect.DeepEqual(values.Slice(), want) {
		t.Errorf("Read() = %q, want %q", values.Slice(), want)
	}
}

func TestReadMissingRegister(t *testing.T) {
	r := New(nil)
	if _, ok := r.Read('z', newMockEditor()); ok {
		t.Error("Read() ok = true for missing register")
	}
	if _, ok := r.Get('z'); ok {
		t.Error("Get() ok = true for missing register")
	}
	if _, ok := r.First('z', newMockEditor()); ok {
		t.Error("First() ok = true for missing register")
	}
	if _, ok := r.Last('z', newMockEditor()); ok {
		t.Error("Last() ok = true for missing register")
	}
}

func TestFirstAndLast(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"first", "middle", "last"})

	if got, ok := r.First('a', ed); !ok || got != "first" {
		t.Errorf("First() = %q, %v; want %q, true", got, ok, "first")
	}
	if got, ok := r.Last('a', ed); !ok || got != "last" {
		t.Errorf("Last() = %q, %v; want %q, true", got, ok, "last")
	}

	_ = r.Write('e', ed, nil)
	if _, ok := r.First('e', ed); ok {
		t.Error("First() ok = true for empty register")
	}
}

func TestReservedRegistersExist(t *testing.T) {
	r := New(nil)
	for _, name := range reserved {
		reg, ok := r.Get(name)
		if !ok {
			t.Errorf("reserved register %q missing", name)
			continue
		}
		if reg.Name() != name {
			t.Errorf("register %q reports name %q", name, reg.Name())
		}
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}
	if IsReserved('a') {
		t.Error("IsReserved('a') = true")
	}
}

func TestClearKeepsReservedRegisters(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)

	for _, name := range []rune{'a', 'b', '/', ':', '"'} {
		if err := r.Write(name, ed, []string{"v"}); err != nil {
			t.Fatal(err)
		}
	}

	r.Clear()

	for _, name := range []rune{'a', 'b', '/', ':', '"'} {
		if _, ok := r.Get(name); ok {
			t.Errorf("Get(%q) ok = true after Clear", name)
		}
	}
	if r.Len() != len(reserved) {
		t.Errorf("Len() = %d after Clear, want %d", r.Len(), len(reserved))
	}

	// Reserved registers still work.
	if err := r.Write(SystemClipboard, ed, []string{"still"}); err != nil {
		t.Fatalf("Write('*') after Clear error = %v", err)
	}
	if got, _ := r.First(SystemClipboard, ed); got != "still" {
		t.Errorf("First('*') = %q, want %q", got, "still")
	}
	if got, _ := r.First(SelectionIndices, ed); got != "1" {
		t.Errorf("First('#') = %q, want %q", got, "1")
	}
}

func TestRemove(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"v"})

	for _, name := range reserved {
		before := r.Len()
		if reg, ok := r.Remove(name); ok || reg != nil {
			t.Errorf("Remove(%q) = %v, %v; want nil, false", name, reg, ok)
		}
		if r.Len() != before {
			t.Errorf("Remove(%q) changed the registry", name)
		}
	}

	reg, ok := r.Remove('a')
	if !ok || reg == nil {
		t.Fatal("Remove('a') did not return the register")
	}
	if reg.Name() != 'a' {
		t.Errorf("removed register name = %q", reg.Name())
	}
	if _, ok := r.Get('a'); ok {
		t.Error("Get('a') ok = true after Remove")
	}
	if _, ok := r.Remove('a'); ok {
		t.Error("second Remove('a') ok = true")
	}
}

func TestWriteAfterRemoveCreatesFreshRegister(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"old1", "old2"})
	r.Remove('a')

	_ = r.Push('a', ed, "new")

	values, _ := r.Read('a', ed)
	if want := []string{"new"}; !reflect.DeepEqual(values.Slice(), want) {
		t.Errorf("Read() = %q, want %q", values.Slice(), want)
	}
}

func TestPreviews(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"first line\nsecond line", "other"})
	_ = r.Write('b', ed, nil)
	_ = r.Write('c', ed, []string{"windows\r\nline"})

	got := make(map[rune]string)
	for name, preview := range r.Previews() {
		got[name] = preview
	}

	want := map[rune]string{
		'a':               "first line",
		'b':               "<empty>",
		'c':               "windows",
		Discard:           "<empty>",
		SelectionIndices:  "<selection indices>",
		SelectionContents: "<selection contents>",
		DocumentPath:      "<document path>",
		SystemClipboard:   "<system clipboard>",
		PrimaryClipboard:  "<primary clipboard>",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Previews() = %v, want %v", got, want)
	}

	sorted := r.SortedPreviews()
	if len(sorted) != len(want) {
		t.Fatalf("SortedPreviews() returned %d entries, want %d", len(sorted), len(want))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Name >= sorted[i].Name {
			t.Errorf("SortedPreviews() not ordered at %d: %q >= %q", i, sorted[i-1].Name, sorted[i].Name)
		}
	}
}

func TestPreviewFollowsPush(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"older"})
	_ = r.Push('a', ed, "newest\nmore")

	reg, _ := r.Get('a')
	if got := reg.Preview(); got != "newest" {
		t.Errorf("Preview() = %q, want %q", got, "newest")
	}
}

func TestReadSnapshotSurvivesMutation(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)
	_ = r.Write('a', ed, []string{"one", "two"})

	values, _ := r.Read('a', ed)

	_ = r.Push('a', ed, "three")
	_ = r.Write('a', ed, []string{"replaced"})
	r.Remove('a')

	if want := []string{"one", "two"}; !reflect.DeepEqual(values.Slice(), want) {
		t.Errorf("snapshot = %q, want %q", values.Slice(), want)
	}
}

func TestReadOnlyRegistersRejectWrites(t *testing.T) {
	ed := newMockEditor()
	r := New(nil)

	for _, name := range []rune{SelectionIndices, SelectionContents, DocumentPath} {
		err := r.Write(name, ed, []string{"x"})
		if !errors.Is(err, ErrNotWritable) {
			t.Errorf("Write(%q) error = %v, want ErrNotWritable", name, err)
		}
		var regErr *Error
		if !errors.As(err, &regErr) || regErr.Name != name || regErr.Op != "write" {
			t.Errorf("Write(%q) error = %#v, want *Error naming the register", name, err)
		}

		err = r.Push(name, ed, "x")
		if !errors.Is(err, ErrNotWritable) {
			t.Errorf("Push(%q) error = %v, want ErrNotWritable", name, err)
		}
	}

	err := r.Write(SelectionIndices, ed, nil)
	if want := "the '#' register is not writable"; err == nil || err.Error() != want {
		t.Errorf("error message = %v, want %q", err, want)
	}
}
