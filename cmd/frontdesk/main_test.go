package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/frontdesk/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ---------------------------------------------------------------------------
// check cpf
// ---------------------------------------------------------------------------

func TestCheckCPF_Valid(t *testing.T) {
	out, err := execute(t, "", "check", "cpf", "11144477735")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "111.444.777-35: valid") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestCheckCPF_Invalid(t *testing.T) {
	out, err := execute(t, "", "check", "cpf", "11111111111", "11144477735")
	if err == nil {
		t.Fatal("expected error for blacklisted CPF")
	}
	if !strings.Contains(out, "11111111111: invalid CPF") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "111.444.777-35: valid") {
		t.Errorf("expected valid CPF to be reported too: %q", out)
	}
}

func TestCheckCPF_RequiresArgument(t *testing.T) {
	if _, err := execute(t, "", "check", "cpf"); err == nil {
		t.Fatal("expected error without arguments")
	}
}

// ---------------------------------------------------------------------------
// check time
// ---------------------------------------------------------------------------

func TestCheckTime(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{[]string{"08:00"}, false},
		{[]string{"18:45"}, false},
		{[]string{"07:00"}, true},
		{[]string{"19:00"}, true},
		{[]string{"09:10"}, true},
		{[]string{"9h"}, true},
		{[]string{"09:00", "--after", "09:00"}, true},
		{[]string{"09:15", "--after", "09:00"}, false},
	}
	for _, tt := range tests {
		args := append([]string{"check", "time"}, tt.args...)
		_, err := execute(t, "", args...)
		if (err != nil) != tt.wantErr {
			t.Errorf("check time %v: err = %v, wantErr %v", tt.args, err, tt.wantErr)
		}
	}
}

// ---------------------------------------------------------------------------
// check date
// ---------------------------------------------------------------------------

func TestCheckDate(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")

	future := time.Now().UTC().AddDate(0, 0, 3).Format("02/01/2006")
	if _, err := execute(t, "", "check", "date", future); err != nil {
		t.Errorf("expected future date to be valid: %v", err)
	}
	if _, err := execute(t, "", "check", "date", "01/01/2000"); err == nil {
		t.Error("expected past date to be rejected")
	}
	if _, err := execute(t, "", "check", "date", "01/01/2000", "--basic"); err != nil {
		t.Errorf("expected past date to pass with --basic: %v", err)
	}
	if _, err := execute(t, "", "check", "date", "01/01/2000", "--basic", "--after", "02/01/2000"); err == nil {
		t.Error("expected date before --after to be rejected")
	}
	if _, err := execute(t, "", "check", "date", "31/02/2026", "--basic"); err == nil {
		t.Error("expected unparseable date to be rejected")
	}
}

// ---------------------------------------------------------------------------
// run
// ---------------------------------------------------------------------------

func TestRun_ExitOption(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "3\n", "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Leaving...") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRun_RejectsBadConfig(t *testing.T) {
	t.Setenv("REPORT_FORMAT", "pdf")
	if _, err := execute(t, "3\n", "run"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestNewLogger_Level(t *testing.T) {
	l := newLogger(&config.Config{Env: "production", LogLevel: "debug"})
	if l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", l.GetLevel())
	}

	l = newLogger(&config.Config{Env: "development", LogLevel: "bogus"})
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn fallback, got %s", l.GetLevel())
	}
}
