package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Airport name,City,Country,IATA
Indira Gandhi International Airport,Delhi,India,DEL
Chhatrapati Shivaji Maharaj International Airport,Mumbai,India,BOM
Frankfurt am Main Airport,Frankfurt,Germany,FRA
`

func TestAirportsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"airports", "--csv", path, "Indai"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("airports: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"DEL\tIndira Gandhi International Airport - Delhi (DEL)",
		"BOM\tChhatrapati Shivaji Maharaj International Airport - Mumbai (BOM)",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestAirportsCommand_MissingFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"airports", "--csv", filepath.Join(t.TempDir(), "missing.csv"), "India"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for missing dataset")
	}
}

func TestAirportsCommand_RequiresCountry(t *testing.T) {
	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"airports"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected argument error")
	}
}
