package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	t.Setenv("TALENTSCOUT_TEST_TOKEN", "from-env")

	got, err := Load(Source{Name: "hf token", Value: "inline", Env: "TALENTSCOUT_TEST_TOKEN", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file secret, got %q", got)
	}
}

func TestLoadPrefersEnvOverValue(t *testing.T) {
	t.Setenv("TALENTSCOUT_TEST_TOKEN", " from-env ")

	got, err := Load(Source{Name: "hf token", Value: "inline", Env: "TALENTSCOUT_TEST_TOKEN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("expected env secret, got %q", got)
	}
}

func TestLoadFallsBackToValue(t *testing.T) {
	t.Setenv("TALENTSCOUT_TEST_TOKEN", "")

	got, err := Load(Source{Name: "hf token", Value: " inline ", Env: "TALENTSCOUT_TEST_TOKEN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline secret, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("TALENTSCOUT_TEST_TOKEN", "")

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		wantErr string
	}{
		{name: "nothing configured", src: Source{}, wantErr: "secret is not configured"},
		{name: "env unset", src: Source{Name: "gemini api key", Env: "TALENTSCOUT_TEST_TOKEN"}, wantErr: "checked TALENTSCOUT_TEST_TOKEN"},
		{name: "empty file", src: Source{Name: "key", File: empty}, wantErr: "is empty"},
		{name: "missing file", src: Source{Name: "key", File: filepath.Join(dir, "missing")}, wantErr: "reading key from file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
