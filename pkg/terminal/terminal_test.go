package terminal

import (
	"os"
	"testing"
)

func TestCols_NotATerminalUsesColumns(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("COLUMNS", "132")
	if got := Cols(f.Fd()); got != 132 {
		t.Errorf("Cols() = %d, want 132", got)
	}

	t.Setenv("COLUMNS", "wide")
	if got := Cols(f.Fd()); got != DefaultCols {
		t.Errorf("Cols() with bad COLUMNS = %d, want %d", got, DefaultCols)
	}

	t.Setenv("COLUMNS", "")
	if got := Cols(f.Fd()); got != DefaultCols {
		t.Errorf("Cols() without COLUMNS = %d, want %d", got, DefaultCols)
	}
}

func TestInteractive_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if Interactive(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestColorDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if ColorDisabled(false) {
		t.Error("color should be enabled by default")
	}
	if !ColorDisabled(true) {
		t.Error("flag should disable color")
	}

	t.Setenv("NO_COLOR", "1")
	if !ColorDisabled(false) {
		t.Error("NO_COLOR should disable color")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("LYTELODE_TEST_INT", "-4")
	if got := envInt("LYTELODE_TEST_INT", 7); got != 7 {
		t.Errorf("negative value should fall back, got %d", got)
	}
	t.Setenv("LYTELODE_TEST_INT", "12")
	if got := envInt("LYTELODE_TEST_INT", 7); got != 12 {
		t.Errorf("envInt = %d, want 12", got)
	}
}
