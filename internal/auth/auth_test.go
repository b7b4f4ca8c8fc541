package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memRepo struct{ admins []Admin }

func (m *memRepo) LoadAll() ([]Admin, error) { return append([]Admin{}, m.admins...), nil }

func TestServiceBasic(t *testing.T) {
	repo := &memRepo{admins: []Admin{{ID: 10, Username: "alice"}}}
	svc, err := NewWithRepo(repo, []int64{20})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if !svc.IsAdmin(10) {
		t.Fatalf("repo preload not effective")
	}
	if !svc.IsAdmin(20) {
		t.Fatalf("env ids not merged")
	}
	if svc.IsAdmin(30) {
		t.Fatalf("unexpected admin")
	}

	want := []Admin{{ID: 10, Username: "alice"}, {ID: 20}}
	if diff := cmp.Diff(want, svc.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{10, 20}, svc.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_IgnoresZeroID(t *testing.T) {
	svc := New([]int64{0, 5})
	if svc.IsAdmin(0) {
		t.Fatalf("zero id must never be admin")
	}
	if !svc.IsAdmin(5) {
		t.Fatalf("5 should be admin")
	}
}

func TestFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "admins.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	got, err := repo.LoadAll()
	if err != nil || len(got) != 0 {
		t.Fatalf("fresh file: %v, %v", got, err)
	}
	roster := `[{"id": 1, "username": "renamed"}, {"id": 2, "note": "backup"}]`
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err = repo.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]Admin{{ID: 1, Username: "renamed"}, {ID: 2, Note: "backup"}}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileRepository_MalformedKeepsEnvAdmins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.json")
	if err := os.WriteFile(path, []byte("nope"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	svc, err := NewWithRepo(repo, []int64{7})
	if err == nil {
		t.Fatalf("expected load error for malformed roster")
	}
	if !svc.IsAdmin(7) {
		t.Fatalf("env admin must survive a broken roster")
	}
}
