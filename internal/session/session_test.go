package session_test

import (
	"testing"
	"time"

	"github.com/DataBuoy/databuoy-cli/internal/session"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := session.New(dir, "openrouter", "openai/gpt-4o-mini", "titanic.xlsx")

	out := "survivors: 342"
	s.Append(session.Turn{Role: "user", Content: "How many survived?"})
	s.Append(session.Turn{Role: "assistant", Content: "342 survived.", Output: &out, Code: "print count(*)"})
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := session.Load(dir, s.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model != "openai/gpt-4o-mini" || got.Dataset != "titanic.xlsx" {
		t.Errorf("metadata lost: %+v", got)
	}
	if len(got.Turns) != 2 {
		t.Fatalf("turns = %d", len(got.Turns))
	}
	if got.Turns[1].Output == nil || *got.Turns[1].Output != out {
		t.Errorf("output lost: %v", got.Turns[1].Output)
	}
	if got.Turns[0].ID == "" || got.Turns[0].At.IsZero() {
		t.Errorf("turn not stamped: %+v", got.Turns[0])
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := session.Load(t.TempDir(), "nope"); err == nil {
		t.Fatalf("expected error for missing session")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	if ids, err := session.List(dir); err != nil || len(ids) != 0 {
		t.Fatalf("empty dir: ids=%v err=%v", ids, err)
	}

	a := session.New(dir, "openrouter", "m", "d")
	a.Append(session.Turn{Role: "user", Content: "one"})
	if err := a.Save(); err != nil {
		t.Fatalf("save a: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	b := session.New(dir, "openrouter", "m", "d")
	b.Append(session.Turn{Role: "user", Content: "two"})
	if err := b.Save(); err != nil {
		t.Fatalf("save b: %v", err)
	}

	ids, err := session.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
	if ids[0] != b.ID {
		t.Errorf("newest first expected, got %v", ids)
	}
}

func TestListMissingDir(t *testing.T) {
	ids, err := session.List("/nonexistent/path/for/test")
	if err != nil || ids != nil {
		t.Fatalf("missing dir should be empty: ids=%v err=%v", ids, err)
	}
}
