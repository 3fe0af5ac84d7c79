package wininput

import "testing"

type recordingInjector struct {
	calls []string
}

func (r *recordingInjector) TypeUnicode(text string) error {
	r.calls = append(r.calls, "type:"+text)
	return nil
}

func (r *recordingInjector) Backspace() error {
	r.calls = append(r.calls, "backspace")
	return nil
}

func (r *recordingInjector) Enter() error {
	r.calls = append(r.calls, "enter")
	return nil
}

// TestTypeRune_RoutesNewlinesThroughEnter verifies newline handling.
func TestTypeRune_RoutesNewlinesThroughEnter(t *testing.T) {
	inj := &recordingInjector{}
	for _, r := range "a\r\nb" {
		if err := TypeRune(inj, r); err != nil {
			t.Fatalf("TypeRune failed: %v", err)
		}
	}
	want := []string{"type:a", "enter", "type:b"}
	if len(inj.calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, inj.calls)
	}
	for i := range want {
		if inj.calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, inj.calls)
		}
	}
}
