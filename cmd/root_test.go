package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/tally/internal/store"
)

func TestOpenSessionReportsRepairedData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TALLY_DB", "")

	db := filepath.Join(dir, "tally.db")
	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set(store.KeyExpenses, `[{"name":"","cost":1}]`); err != nil {
		t.Fatal(err)
	}
	_ = st.Close()

	var buf bytes.Buffer
	oldDB, oldErr, oldQuiet := flagDB, stderr, flagQuiet
	flagDB, stderr, flagQuiet = db, &buf, false
	t.Cleanup(func() { flagDB, stderr, flagQuiet = oldDB, oldErr, oldQuiet })

	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}

	if !strings.Contains(buf.String(), "ignored 1 invalid") {
		t.Fatalf("stderr = %q, want repair warning", buf.String())
	}

	// The repaired data is clean on the next open.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	s2, err := openSession()
	if err != nil {
		t.Fatalf("second openSession: %v", err)
	}
	defer s2.Close()
	if buf.Len() != 0 {
		t.Fatalf("stderr = %q, want nothing on clean load", buf.String())
	}
}
