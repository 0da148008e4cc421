package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "# endpoints\n\nIR_TEST_RPC=\"https://rpc.example/?key=a=b\"\nIR_TEST_QUOTED='single'\nnot a pair\n=novalue\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IR_TEST_RPC", "")
	t.Setenv("IR_TEST_QUOTED", "")

	if n := Load(path); n != 2 {
		t.Errorf("Load() = %d, want 2", n)
	}
	if got := os.Getenv("IR_TEST_RPC"); got != "https://rpc.example/?key=a=b" {
		t.Errorf("IR_TEST_RPC = %q", got)
	}
	if got := os.Getenv("IR_TEST_QUOTED"); got != "single" {
		t.Errorf("IR_TEST_QUOTED = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if n := Load(filepath.Join(t.TempDir(), "missing")); n != 0 {
		t.Errorf("Load() on missing file = %d, want 0", n)
	}
}
