//go:build linux
// +build linux

package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

func TestDrain_SplicePipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer r.Close()
	w.WriteString("hello")
	w.Close()

	out := filepath.Join(t.TempDir(), "out")
	status, stdout, stderr := run(t, r, "splice", out)
	if status != subcommands.ExitSuccess {
		t.Fatalf("status = %v, want ExitSuccess (stderr %q)", status, stderr)
	}
	if want := "Wrote 5 bytes in 1 splice call\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestDrain_SpliceRegularFileFails(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	status, stdout, stderr := run(t, stdinFile(t, "data"), "splice", out)
	if status != subcommands.ExitFailure {
		t.Fatalf("status = %v, want ExitFailure", status)
	}
	if want := "splice (iter 0) failed: invalid argument\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	// The output was created before the first call.
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if fi.Size() != 0 {
		t.Errorf("output size = %d, want 0", fi.Size())
	}
}
