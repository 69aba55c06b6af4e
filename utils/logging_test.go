package utils

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := SetupLogging(false, "ignored.log")
	if err != nil || f != nil {
		t.Fatalf("SetupLogging(false) = %v, %v", f, err)
	}
	if log.Writer() != io.Discard {
		t.Fatalf("log output = %v, expected io.Discard", log.Writer())
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "logs", "life.log")
	f, err := SetupLogging(true, path)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	log.Println("generation 1")
	if err = f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("log file is empty")
	}
}
