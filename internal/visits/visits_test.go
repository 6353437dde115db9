package visits

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		store  *MemoryStore
		want   int
		stored string
	}{
		{"absent", &MemoryStore{}, 1, "1"},
		{"zero", &MemoryStore{Value: strPtr("0")}, 1, "1"},
		{"existing", &MemoryStore{Value: strPtr("41")}, 42, "42"},
		{"unparseable", &MemoryStore{Value: strPtr("lots")}, 1, "1"},
		{"negative", &MemoryStore{Value: strPtr("-7")}, 1, "1"},
		{"read error", &MemoryStore{ReadErr: errors.New("denied")}, 1, "1"},
		{"below maximum", &MemoryStore{Value: strPtr(strconv.Itoa(math.MaxInt - 1))}, math.MaxInt, strconv.Itoa(math.MaxInt)},
		{"at maximum", &MemoryStore{Value: strPtr(strconv.Itoa(math.MaxInt))}, math.MaxInt, strconv.Itoa(math.MaxInt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.store)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
			if tt.store.Value == nil || *tt.store.Value != tt.stored {
				t.Errorf("stored = %v, want %q", tt.store.Value, tt.stored)
			}
			if tt.store.Writes != 1 {
				t.Errorf("writes = %d, want 1", tt.store.Writes)
			}
		})
	}
}

type failingWriter struct{ MemoryStore }

func (f *failingWriter) Write(int) error { return errors.New("disk full") }

func TestLoad_WriteFailureStillCounts(t *testing.T) {
	n, err := Load(&failingWriter{MemoryStore{Value: strPtr("4")}})
	if err == nil {
		t.Fatal("Load() error = nil, want write failure")
	}
	if n != 5 {
		t.Errorf("Load() = %d, want 5", n)
	}
}

func TestLoad_SaturatesInFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state.toml"))
	if err := store.Write(math.MaxInt); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		n, err := Load(store)
		if err != nil {
			t.Fatal(err)
		}
		if n != math.MaxInt {
			t.Fatalf("Load() = %d, want math.MaxInt", n)
		}
	}
	if n, err := store.Read(); err != nil || n != math.MaxInt {
		t.Errorf("stored %d, %v", n, err)
	}
	if got := Numerals(math.MaxInt); strings.ContainsRune(got, '-') {
		t.Errorf("Numerals(MaxInt) = %q", got)
	}
}

func TestNumeral(t *testing.T) {
	want := []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
	for d, w := range want {
		if got := Numeral(d); got != w {
			t.Errorf("Numeral(%d) = %q, want %q", d, got, w)
		}
	}
	if Numeral(10) != "" || Numeral(-1) != "" {
		t.Error("Numeral out of range should be empty")
	}
}

func TestNumerals(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "零"},
		{1, "一"},
		{10, "一零"},
		{1234567890, "一二三四五六七八九零"},
		{2024, "二零二四"},
	}
	for _, tt := range tests {
		if got := Numerals(tt.n); got != tt.want {
			t.Errorf("Numerals(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRoundTrip_ZeroLoadsToOne(t *testing.T) {
	store := &MemoryStore{Value: strPtr("0")}
	n, err := Load(store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *store.Value != "1" {
		t.Errorf("stored = %q, want \"1\"", *store.Value)
	}
	if got := Numerals(n); got != "一" {
		t.Errorf("displayed = %q, want 一", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(3); got != "Organix (3 visits) - Neon Japanese Experience" {
		t.Errorf("Title(3) = %q", got)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")
	s := NewFileStore(path)

	n, err := s.Read()
	if err != nil || n != 0 {
		t.Fatalf("Read() on missing file = (%d, %v), want (0, nil)", n, err)
	}

	for want := 1; want <= 3; want++ {
		got, err := Load(s)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != want {
			t.Errorf("Load() = %d, want %d", got, want)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `visitCount = "3"`) {
		t.Errorf("state file = %q, want visitCount = \"3\"", data)
	}
}

func TestFileStore_PreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("theme = \"dark\"\nvisitCount = \"9\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	if n, err := Load(s); err != nil || n != 10 {
		t.Fatalf("Load() = (%d, %v), want (10, nil)", n, err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `theme = "dark"`) {
		t.Errorf("foreign key lost: %q", data)
	}
}

func TestFileStore_Malformed(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad value": "visitCount = \"many\"\n",
		"bad toml":  "visitCount = = 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewFileStore(path)
			if _, err := s.Read(); err == nil {
				t.Error("Read() error = nil, want parse failure")
			}
			n, err := Load(s)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if n != 1 {
				t.Errorf("Load() = %d, want 1", n)
			}
			if got, err := s.Read(); err != nil || got != 1 {
				t.Errorf("Read() after recovery = (%d, %v), want (1, nil)", got, err)
			}
		})
	}
}
