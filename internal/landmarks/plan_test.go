package landmarks

import (
	"os"
	"path/filepath"
	"testing"
)

// buildTree creates a source tree under a temp dir from a map of
// category -> file names. Returns the tree root.
func buildTree(t *testing.T, files map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for cat, names := range files {
		if err := os.MkdirAll(filepath.Join(root, cat), 0755); err != nil {
			t.Fatal(err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(root, cat, name), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return root
}

func TestPlan(t *testing.T) {
	src := buildTree(t, map[string][]string{
		"female": {"diana.npy", "notes.txt", "cleo.npy"},
		"male":   {"caesar.npy"},
		"empty":  {},
	})
	// A stray file at the root level is not a category and must be ignored.
	if err := os.WriteFile(filepath.Join(src, "stray.npy"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "out")

	plan, err := Plan(src, dst)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if len(plan) != 3 {
		t.Fatalf("Plan() returned %d mappings, want 3: %+v", len(plan), plan)
	}

	for _, m := range plan {
		wantDst := filepath.Join(dst, m.Category, m.Name+JSONExt)
		if m.Dst != wantDst {
			t.Errorf("mapping %s/%s: dst = %s, want %s", m.Category, m.Name, m.Dst, wantDst)
		}
		if filepath.Ext(m.Src) != NpyExt {
			t.Errorf("mapping picked up non-npy source %s", m.Src)
		}
	}

	// Planning must not create anything at the destination.
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("Plan() performed destination I/O")
	}
}

func TestPlanMissingRoot(t *testing.T) {
	_, err := Plan(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !os.IsNotExist(err) {
		t.Errorf("Plan() error = %v, want os.IsNotExist", err)
	}
}

func TestPlanJSON(t *testing.T) {
	root := buildTree(t, map[string][]string{
		"female": {"diana.json", "diana.npy"},
		"male":   {"caesar.json"},
	})

	plan, err := PlanJSON(root)
	if err != nil {
		t.Fatalf("PlanJSON() error = %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("PlanJSON() returned %d mappings, want 2", len(plan))
	}
	for _, m := range plan {
		if filepath.Ext(m.Src) != JSONExt {
			t.Errorf("PlanJSON() picked up %s", m.Src)
		}
	}
}
