package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gastos/internal/logger"
)

func init() {
	logger.Init("test")
}

func assertErrorContains(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "success.db")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	err := run([]string{"-user", "TestUser", "-password", "secret", "-db", dbPath}, new(bytes.Buffer), stdout, stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "User testuser created successfully") {
		t.Errorf("unexpected output: %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "secret") {
		t.Error("password echoed to stdout")
	}
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duplicate.db")
	args := []string{"-user", "testuser", "-password", "secret", "-db", dbPath}

	if err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	assertErrorContains(t, err, "already exists")
}

func TestRun_InvalidUsername(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "invalid.db")

	err := run([]string{"-user", "no spaces", "-password", "secret", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	assertErrorContains(t, err, "username")
}

func TestRun_ShortPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "short.db")

	err := run([]string{"-user", "testuser", "-password", "abc", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	assertErrorContains(t, err, "password")
}

func TestRun_MissingUserFlag(t *testing.T) {
	stdout := new(bytes.Buffer)

	err := run([]string{"-password", "secret"}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	assertErrorContains(t, err, "missing required flags: user")
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("expected usage on stdout, got %q", stdout.String())
	}
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interactive.db")
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("interactive_secret\n")

	if err := run([]string{"-user", "interactive", "-db", dbPath}, stdin, stdout, new(bytes.Buffer)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Password: ") {
		t.Errorf("expected password prompt, got %q", out)
	}
	if !strings.Contains(out, "User interactive created successfully") {
		t.Errorf("expected success message, got %q", out)
	}
}

func TestRun_InteractivePasswordEOF(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "eof.db")

	err := run([]string{"-user", "interactive", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	assertErrorContains(t, err, "failed to read password")
}
