package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func copyTestdata(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "problems.json"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ProblemSet.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) []Problem {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	var out []Problem
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	return out
}

func TestOpenFileStore_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ProblemSet.json")

	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	all, err := s.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty catalog, got %d", len(all))
	}
	if got := readFile(t, path); len(got) != 0 {
		t.Errorf("expected empty file, got %d problems", len(got))
	}
}

func TestFileStore_LoadsAndQueries(t *testing.T) {
	s, err := OpenFileStore(copyTestdata(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	got, err := s.ListByTopic(context.Background(), "Fractions", 0)
	if err != nil {
		t.Fatalf("list by topic: %v", err)
	}
	if !equalIDs(ids(got), []string{"frac-1", "frac-2"}) {
		t.Errorf("ListByTopic = %v", ids(got))
	}
}

func TestFileStore_MutationsPersist(t *testing.T) {
	path := copyTestdata(t)
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	newP := Problem{ID: "alg-1", Text: "Solve x + 3 = 7", Topic: "Introduction to Algebra", Difficulty: 3, EstimatedMinutes: 3}
	if err := s.Create(ctx, newP); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "arith-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Update(ctx, "frac-1", Problem{Text: "Which is larger: 5/8 or 2/3?", Topic: "Fractions", Difficulty: 2, EstimatedMinutes: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}

	onDisk := readFile(t, path)
	if !equalIDs(ids(onDisk), []string{"arith-2", "frac-1", "frac-2", "alg-1"}) {
		t.Errorf("file ids = %v", ids(onDisk))
	}

	// A fresh open sees the same state.
	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if n, err := reopened.Count(ctx); err != nil || n != 4 {
		t.Errorf("Count after reopen = %d, %v, want 4", n, err)
	}
	p, err := reopened.Get(ctx, "frac-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Text != "Which is larger: 5/8 or 2/3?" {
		t.Errorf("updated text not persisted: %q", p.Text)
	}
}

func TestFileStore_FailedMutationLeavesFileUntouched(t *testing.T) {
	path := copyTestdata(t)
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	before, _ := os.ReadFile(path)

	var conflict *ConflictError
	err = s.Create(context.Background(), Problem{ID: "arith-1", Text: "dup", Topic: "x", Difficulty: 1, EstimatedMinutes: 1})
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("file changed after rejected create")
	}
}

func TestOpenFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatal("expected error for corrupt catalog")
	}
}
