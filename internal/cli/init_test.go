package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hisab/internal/backend"
	"hisab/internal/storage"
)

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HISAB_TEST_A=from-file\nHISAB_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HISAB_TEST_A", "from-env")
	t.Setenv("HISAB_TEST_B", "")
	os.Unsetenv("HISAB_TEST_B")

	LoadEnvFile(path)

	if got := os.Getenv("HISAB_TEST_A"); got != "from-env" {
		t.Errorf("HISAB_TEST_A = %q, want from-env", got)
	}
	if got := os.Getenv("HISAB_TEST_B"); got != "from-file" {
		t.Errorf("HISAB_TEST_B = %q, want from-file", got)
	}
}

func TestLoadEnvFile_MissingFileIgnored(t *testing.T) {
	LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
}

func TestSetupLogger(t *testing.T) {
	if l := SetupLogger("debug"); l == nil || l.Component() != "app" {
		t.Fatalf("unexpected logger %+v", l)
	}
	if l := SetupLogger("shouting"); l == nil {
		t.Fatal("expected fallback logger for unknown level")
	}
}

func TestInitLedger(t *testing.T) {
	logger := SetupLogger("error")
	res := &backend.BackendResult{Store: storage.NewMemoryStore()}

	ledger := InitLedger(context.Background(), logger, res)
	if len(ledger.Transactions()) != 3 {
		t.Fatalf("expected seeded ledger, got %d transactions", len(ledger.Transactions()))
	}
}
