package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/edaloom-cli/internal/utils"
)

func TestSafeWriteFileAndFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "figures", "deep")
	if err := utils.EnsureDir(nested); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(root, "report.json"), []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "report.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	got, err := utils.FindUp(nested, "report.json")
	if err != nil {
		t.Fatalf("find up: %v", err)
	}
	if got != root {
		t.Fatalf("FindUp = %s, want %s", got, root)
	}
	if _, err := utils.FindUp(nested, "missing.json"); err == nil {
		t.Fatalf("expected error for missing marker")
	}
}

func TestSafeFileName(t *testing.T) {
	cases := map[string]string{
		"price":       "price",
		"a/b c":       "a_b_c",
		"# Tokens":    "__Tokens",
		"":            "unnamed",
		"état":        "_tat",
		"v1.2-final_": "v1.2-final_",
	}
	for in, want := range cases {
		if got := utils.SafeFileName(in); got != want {
			t.Errorf("SafeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected json: %q", b)
	}
}

func TestFileNamesSuffixesRepeats(t *testing.T) {
	var n utils.FileNames
	n.Reserve("taken")
	got := []string{n.Next("a b"), n.Next("a_b"), n.Next("A B"), n.Next("taken"), n.Next("a_b_2")}
	want := []string{"a_b", "a_b_2", "A_B_3", "taken_2", "a_b_2_2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next #%d = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}
