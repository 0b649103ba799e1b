package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	return tmpDir
}

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := chdirTemp(t)

	path, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}

	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realDir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		t.Fatalf("resolve log dir symlink failed: %v", err)
	}
	if wantDir := filepath.Join(realTmpDir, defaultLogDirName); realDir != wantDir {
		t.Fatalf("log dir want %s, got %s", wantDir, realDir)
	}
	if filepath.Base(path) != defaultLogFilename {
		t.Fatalf("log filename want %s, got %s", defaultLogFilename, filepath.Base(path))
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("log dir should exist after resolve: %v", err)
	}
}

func TestReleaseModeWritesRotatedFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{
		Dir:      tmpDir,
		Filename: "pos.log",
	})
	log.Info("sale_recorded")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "pos.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(content), "sale_recorded") {
		t.Fatalf("log file should carry the message, got=%s", content)
	}
}

func TestDebugModeWritesConsoleOnly(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tmpDir,
		Filename: "pos.log",
	})
	log.Debug("till_opened")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "pos.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not create a log file")
	}
}
