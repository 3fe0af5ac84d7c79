package target

import (
	"errors"
	"testing"

	"github.com/frudas24/overtype/internal/testutil"
	"github.com/frudas24/overtype/internal/uia"
	"github.com/frudas24/overtype/internal/window"
)

func newProber(t *testing.T, a uia.Attacher, titles window.Tracker) *Prober {
	t.Helper()
	p, err := NewProber(a, titles)
	if err != nil {
		t.Fatalf("NewProber failed: %v", err)
	}
	return p
}

// TestNewProber_RequiresAttacher verifies nil collaborators are rejected.
func TestNewProber_RequiresAttacher(t *testing.T) {
	if _, err := NewProber(nil, nil); err == nil {
		t.Fatalf("expected error for nil attacher")
	}
}

// TestProbe_ZeroHandle verifies an empty handle never attaches.
func TestProbe_ZeroHandle(t *testing.T) {
	a := &testutil.FakeAttacher{}
	d := newProber(t, a, nil).Probe(0)
	if d.AccessibilitySupported || d.Control != nil {
		t.Fatalf("expected unsupported descriptor, got %+v", d)
	}
	if len(a.Attached) != 0 {
		t.Fatalf("expected no attach, got %v", a.Attached)
	}
}

// TestProbe_PrefersEditOverDocument verifies search order.
func TestProbe_PrefersEditOverDocument(t *testing.T) {
	edit := &testutil.FakeControl{Role: uia.RoleEdit}
	doc := &testutil.FakeControl{Role: uia.RoleDocument}
	tree := &testutil.FakeTree{Controls: map[uia.Role]uia.Control{uia.RoleEdit: edit, uia.RoleDocument: doc}}
	a := &testutil.FakeAttacher{Trees: map[window.Handle]*testutil.FakeTree{5: tree}}

	d := newProber(t, a, nil).Probe(5)
	if !d.AccessibilitySupported || d.Control != edit {
		t.Fatalf("expected edit control, got %+v", d)
	}
	if len(tree.Lookups) != 1 || tree.Lookups[0] != uia.RoleEdit {
		t.Fatalf("expected a single edit lookup, got %v", tree.Lookups)
	}
}

// TestProbe_FallsBackToDocument verifies the document role is tried second.
func TestProbe_FallsBackToDocument(t *testing.T) {
	doc := &testutil.FakeControl{Role: uia.RoleDocument}
	tree := &testutil.FakeTree{Controls: map[uia.Role]uia.Control{uia.RoleDocument: doc}}
	a := &testutil.FakeAttacher{Trees: map[window.Handle]*testutil.FakeTree{5: tree}}

	d := newProber(t, a, nil).Probe(5)
	if !d.AccessibilitySupported || d.Control != doc {
		t.Fatalf("expected document control, got %+v", d)
	}
}

// TestProbe_NoMatch verifies an empty tree is unsupported.
func TestProbe_NoMatch(t *testing.T) {
	tree := &testutil.FakeTree{Controls: map[uia.Role]uia.Control{}}
	a := &testutil.FakeAttacher{Trees: map[window.Handle]*testutil.FakeTree{5: tree}}

	d := newProber(t, a, nil).Probe(5)
	if d.AccessibilitySupported || d.Control != nil || d.Handle != 5 {
		t.Fatalf("expected unsupported descriptor for handle 5, got %+v", d)
	}
}

// TestProbe_AttachFailureDegrades verifies attach errors and panics are not fatal.
func TestProbe_AttachFailureDegrades(t *testing.T) {
	p := newProber(t, &testutil.FakeAttacher{Err: errors.New("access denied")}, nil)
	if d := p.Probe(5); d.AccessibilitySupported {
		t.Fatalf("expected unsupported on attach error")
	}

	p = newProber(t, &testutil.FakeAttacher{Panic: "com failure"}, nil)
	if d := p.Probe(5); d.AccessibilitySupported || d.Handle != 5 {
		t.Fatalf("expected unsupported on attach panic, got %+v", d)
	}
}

// TestProbe_LivenessFailureIsNotFound verifies a dead control is treated as missing.
func TestProbe_LivenessFailureIsNotFound(t *testing.T) {
	edit := &testutil.FakeControl{Role: uia.RoleEdit, InfoErr: uia.ErrGone}
	tree := &testutil.FakeTree{Controls: map[uia.Role]uia.Control{uia.RoleEdit: edit}}
	a := &testutil.FakeAttacher{Trees: map[window.Handle]*testutil.FakeTree{5: tree}}

	d := newProber(t, a, nil).Probe(5)
	if d.AccessibilitySupported || d.Control != nil {
		t.Fatalf("expected unsupported descriptor, got %+v", d)
	}
}

// TestProbe_Idempotent verifies repeated probes agree and never write.
func TestProbe_Idempotent(t *testing.T) {
	edit := &testutil.FakeControl{Role: uia.RoleEdit}
	tree := &testutil.FakeTree{Controls: map[uia.Role]uia.Control{uia.RoleEdit: edit}}
	a := &testutil.FakeAttacher{Trees: map[window.Handle]*testutil.FakeTree{5: tree}}
	tracker := testutil.NewFakeTracker(9)
	tracker.Titles = map[window.Handle]string{5: "Untitled - Notepad"}
	p := newProber(t, a, tracker)

	first := p.Probe(5)
	second := p.Probe(5)
	if first != second {
		t.Fatalf("expected identical descriptors, got %+v and %+v", first, second)
	}
	if len(edit.Direct.Texts()) != 0 {
		t.Fatalf("expected no writes during probe")
	}
	if first.Label() != "(UIA) Untitled - Notepad" {
		t.Fatalf("unexpected label %q", first.Label())
	}
	if tracker.Queries() != 0 {
		t.Fatalf("expected probe to leave focus queries alone")
	}
}
