package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveSlugs_FromRoot(t *testing.T) {
	root := t.TempDir()
	for _, slug := range []string{"zenquotes", "calendly"} {
		if err := os.MkdirAll(filepath.Join(root, slug), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", slug, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	slugs, err := resolveSlugs(root, "", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "calendly" || slugs[1] != "zenquotes" {
		t.Errorf("unexpected slugs %v", slugs)
	}
}

func TestResolveSlugs_ArgsWin(t *testing.T) {
	slugs, err := resolveSlugs("ignored", "ignored.yaml", []string{"hashnode"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "hashnode" {
		t.Errorf("unexpected slugs %v", slugs)
	}
}

func TestResolveSlugs_FromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	if err := os.WriteFile(path, []byte("apps:\n  - calendly\n  - hashnode\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	slugs, err := resolveSlugs("ignored", path, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "calendly" || slugs[1] != "hashnode" {
		t.Errorf("unexpected slugs %v", slugs)
	}
}

func TestResolveSlugs_EmptyRoot(t *testing.T) {
	if _, err := resolveSlugs(t.TempDir(), "", nil); err == nil {
		t.Error("expected error for root without applications")
	}
}

func TestCheck_ReportsMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "ghost"), 0o755); err != nil {
		t.Fatalf("failed to create app dir: %v", err)
	}

	prevRoot := checkRoot
	checkRoot = root
	defer func() { checkRoot = prevRoot }()

	var out bytes.Buffer
	checkCmd.SetOut(&out)
	defer checkCmd.SetOut(nil)

	if err := checkCmd.RunE(checkCmd, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	missing := filepath.Join(root, "ghost", "app.go")
	if !strings.Contains(out.String(), "Could not find "+missing) {
		t.Errorf("expected missing-file line for %s, got %q", missing, out.String())
	}
	if !strings.Contains(out.String(), "No internal tool calls found") {
		t.Errorf("expected clean summary line, got %q", out.String())
	}
}

func TestStrippedBase(t *testing.T) {
	cases := map[string]string{
		"specs/calendly.yaml": "calendly",
		"api.json":            "api",
		"/abs/path/ghost.yml": "ghost",
	}
	for in, want := range cases {
		if got := strippedBase(in); got != want {
			t.Errorf("strippedBase(%q) = %q, want %q", in, got, want)
		}
	}
}
