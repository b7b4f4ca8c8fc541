package recipes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func TestFileStore_RecipesRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	var want []Recipe
	for i := 0; i < 5; i++ {
		r := Recipe{AddedBy: int64(100 + i), Title: fmt.Sprintf("Dish %d", i), Text: fmt.Sprintf("Step %d\nÉtape «%d» & <more>", i, i)}
		if err := store.AppendRecipe(r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		want = append(want, r)
	}

	got, err := store.ListRecipes()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("recipes mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "receipts.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Fatalf("file is not indented: %s", raw)
	}
	if !strings.Contains(string(raw), "Étape «0» & <more>") {
		t.Fatalf("text not stored verbatim: %s", raw)
	}
}

func TestFileStore_CommentsKeepNullIndex(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	general := Comment{User: "alice", UserID: 1, Text: "nice bot"}
	linked := Comment{User: "bob", UserID: 2, Text: "too salty", RecipeIdx: intPtr(0)}
	if err := store.AppendComment(general); err != nil {
		t.Fatalf("append general: %v", err)
	}
	if err := store.AppendComment(linked); err != nil {
		t.Fatalf("append linked: %v", err)
	}

	got, err := store.ListComments()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]Comment{general, linked}, got); diff != "" {
		t.Fatalf("comments mismatch (-want +got):\n%s", diff)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, "comments.json"))
	if !strings.Contains(string(raw), `"recipe_idx": null`) {
		t.Fatalf("general comment should serialise a null index: %s", raw)
	}
}

func TestFileStore_MissingFilesAreEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	rs, err := store.ListRecipes()
	if err != nil || len(rs) != 0 {
		t.Fatalf("want empty recipes, got %v, %v", rs, err)
	}
	cs, err := store.ListComments()
	if err != nil || len(cs) != 0 {
		t.Fatalf("want empty comments, got %v, %v", cs, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	p := filepath.Join(dir, "receipts.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rs, err := store.ListRecipes()
	if len(rs) != 0 {
		t.Fatalf("corrupt file should read as empty, got %v", rs)
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}

	if err := store.AppendRecipe(Recipe{Title: "x"}); err != nil {
		t.Fatalf("append over corrupt file: %v", err)
	}
	rs, err = store.ListRecipes()
	if err != nil {
		t.Fatalf("list after rewrite: %v", err)
	}
	if diff := cmp.Diff([]Recipe{{Title: "x"}}, rs); diff != "" {
		t.Fatalf("recipes mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_UnreadableFileIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	// a directory where the file should be cannot be read as one
	if err := os.Mkdir(filepath.Join(dir, "comments.json"), 0o755); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.AppendComment(Comment{User: "u", Text: "hi"}); err == nil || errors.Is(err, ErrCorrupt) {
		t.Fatalf("want a read error, got %v", err)
	}
}

func TestFileStore_RecreatesDirOnWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.AppendComment(Comment{User: "u", UserID: 1, Text: "hi"}); err != nil {
		t.Fatalf("append after dir removal: %v", err)
	}
	cs, err := store.ListComments()
	if err != nil || len(cs) != 1 {
		t.Fatalf("want 1 comment, got %v, %v", cs, err)
	}
}

func TestCommentsFor(t *testing.T) {
	cs := []Comment{
		{User: "a", Text: "1", RecipeIdx: intPtr(0)},
		{User: "b", Text: "2"},
		{User: "c", Text: "3", RecipeIdx: intPtr(1)},
		{User: "d", Text: "4", RecipeIdx: intPtr(0)},
	}
	got := CommentsFor(cs, 0)
	if len(got) != 2 || got[0].User != "a" || got[1].User != "d" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if len(CommentsFor(cs, 5)) != 0 {
		t.Fatalf("expected no comments for unknown recipe")
	}
}
