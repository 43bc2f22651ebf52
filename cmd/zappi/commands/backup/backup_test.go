package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/zappi/internal/backup"
	zerrors "github.com/thoreinstein/zappi/internal/errors"
)

// newTestManager returns a manager whose clock advances a second per call so
// snapshot IDs are distinct without sleeping.
func newTestManager(t *testing.T) (*backup.Manager, string) {
	t.Helper()

	dir := t.TempDir()
	base := time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC)
	calls := 0
	mgr := backup.NewManager(
		backup.WithBackupDir(filepath.Join(dir, "backups")),
		backup.WithRetentionCount(10),
		backup.WithClock(func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Second)
		}),
	)

	src := filepath.Join(dir, "apps.json")
	if err := os.WriteFile(src, []byte(`{"apps":[]}`), 0o600); err != nil {
		t.Fatalf("creating store file: %v", err)
	}
	return mgr, src
}

func snapshot(t *testing.T, mgr *backup.Manager, src string, n int) {
	t.Helper()
	for i := range n {
		if _, err := mgr.Snapshot(src, fmt.Sprintf("test-%d", i)); err != nil {
			t.Fatalf("creating backup %d: %v", i, err)
		}
	}
}

func TestBackupList_Empty(t *testing.T) {
	mgr, _ := newTestManager(t)

	var buf bytes.Buffer
	if err := runListWithWriter(&buf, mgr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No backups available") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestBackupList_Tabular(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 2)

	var buf bytes.Buffer
	if err := runListWithWriter(&buf, mgr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID", "REASON", "test-0", "test-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// newest first
	if strings.Index(out, "test-1") > strings.Index(out, "test-0") {
		t.Errorf("expected newest backup first:\n%s", out)
	}
}

func TestBackupList_JSON(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 1)

	listJSON = true
	t.Cleanup(func() { listJSON = false })

	var buf bytes.Buffer
	if err := runListWithWriter(&buf, mgr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []infoOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(got))
	}
	if got[0].Reason != "test-0" || got[0].ID == "" {
		t.Errorf("unexpected entry: %+v", got[0])
	}
}

func TestBackupRestore_Latest(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 1)

	if err := os.WriteFile(src, []byte(`{"apps":[{"name":"x"}]}`), 0o600); err != nil {
		t.Fatalf("modifying store file: %v", err)
	}

	var buf bytes.Buffer
	if err := runRestoreWithWriter(&buf, mgr, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("reading restored file: %v", err)
	}
	if string(data) != `{"apps":[]}` {
		t.Errorf("file not restored, got %s", data)
	}
	if !strings.Contains(buf.String(), "Using most recent backup") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestBackupRestore_NoBackups(t *testing.T) {
	mgr, _ := newTestManager(t)

	err := runRestoreWithWriter(&bytes.Buffer{}, mgr, nil)
	if err == nil {
		t.Fatal("expected error when no backups exist")
	}
	if zerrors.CodeOf(err) != zerrors.ExitUser {
		t.Errorf("exit code = %d, want %d", zerrors.CodeOf(err), zerrors.ExitUser)
	}
}

func TestBackupRestore_UnknownID(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 1)

	err := runRestoreWithWriter(&bytes.Buffer{}, mgr, []string{"19990101T000000.000000"})
	if err == nil {
		t.Fatal("expected error for unknown backup ID")
	}
}

func TestBackupPrune(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 3)

	var buf bytes.Buffer
	if err := runPruneWithWriter(&buf, mgr, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Removed 2 old backup(s)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	manifests, err := mgr.List()
	if err != nil {
		t.Fatalf("listing backups: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Reason != "test-2" {
		t.Errorf("expected only the newest backup to remain, got %+v", manifests)
	}
}

func TestBackupPrune_NothingToDo(t *testing.T) {
	mgr, src := newTestManager(t)
	snapshot(t, mgr, src, 1)

	var buf bytes.Buffer
	if err := runPruneWithWriter(&buf, mgr, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No backups to prune") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestBackupPrune_NegativeKeep(t *testing.T) {
	mgr, _ := newTestManager(t)

	if err := runPruneWithWriter(&bytes.Buffer{}, mgr, -1); err == nil {
		t.Error("expected error for negative --keep")
	}
}
