package install

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"organix/internal/locale"
)

func TestController_NativeAccept(t *testing.T) {
	c := NewController()
	if c.State() != Idle {
		t.Fatalf("initial state = %v", c.State())
	}
	c.Signal(Installable)
	if c.State() != Promptable || !c.ButtonVisible() {
		t.Fatalf("after installable: state %v, button %v", c.State(), c.ButtonVisible())
	}
	if !c.Trigger() {
		t.Fatal("Trigger() in promptable should request the native prompt")
	}
	if c.State() != Prompted {
		t.Fatalf("state = %v, want prompted", c.State())
	}
	c.Resolve(OutcomeAccepted)
	if c.State() != Accepted || c.Visible() {
		t.Errorf("after accept: state %v, visible %v", c.State(), c.Visible())
	}
}

func TestController_NativeDismissThenInstructions(t *testing.T) {
	c := NewController()
	c.Signal(Installable)
	c.Trigger()
	c.Resolve(OutcomeDismissed)
	if c.State() != Dismissed || !c.ButtonVisible() {
		t.Fatalf("after dismiss: state %v, button %v", c.State(), c.ButtonVisible())
	}
	if c.Trigger() {
		t.Error("Trigger() after dismiss requested a native prompt again")
	}
	if !c.ShowingInstructions() || c.ButtonVisible() {
		t.Errorf("instructions %v, button %v", c.ShowingInstructions(), c.ButtonVisible())
	}
	c.CloseInstructions()
	if c.ShowingInstructions() {
		t.Error("instructions still open after close")
	}
}

func TestController_IdleFallsBackToInstructions(t *testing.T) {
	c := NewController()
	c.Signal(Unsupported)
	if c.State() != Idle || !c.Visible() {
		t.Fatalf("unsupported: state %v, visible %v", c.State(), c.Visible())
	}
	if c.Trigger() {
		t.Error("Trigger() in idle requested a native prompt")
	}
	if !c.ShowingInstructions() {
		t.Error("instructions not shown")
	}
}

func TestController_StandaloneNeverShows(t *testing.T) {
	sequences := [][]func(*Controller){
		{func(c *Controller) { c.Signal(Standalone) }, func(c *Controller) { c.Signal(Installable) }},
		{func(c *Controller) { c.Signal(Installable) }, func(c *Controller) { c.Signal(Standalone) }},
		{func(c *Controller) { c.Trigger() }, func(c *Controller) { c.Signal(Standalone) }},
		{func(c *Controller) { c.Signal(Installable) }, func(c *Controller) { c.Trigger() }, func(c *Controller) { c.Signal(Standalone) }, func(c *Controller) { c.Resolve(OutcomeDismissed) }},
	}
	for i, seq := range sequences {
		c := NewController()
		for _, step := range seq {
			step(c)
		}
		// Any further signal or action keeps it hidden.
		c.Signal(Installable)
		c.Trigger()
		c.Resolve(OutcomeDismissed)
		if c.Visible() || c.ButtonVisible() || c.ShowingInstructions() {
			t.Errorf("sequence %d: affordance visible after standalone (state %v)", i, c.State())
		}
		if c.State() != Hidden {
			t.Errorf("sequence %d: state = %v, want hidden", i, c.State())
		}
	}
}

func TestController_ResolveOutsidePromptIgnored(t *testing.T) {
	c := NewController()
	c.Resolve(OutcomeAccepted)
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestStrings(t *testing.T) {
	if Installable.String() != "installable" || Standalone.String() != "standalone" || Unsupported.String() != "unsupported" {
		t.Error("Capability.String mismatch")
	}
	if Prompted.String() != "prompted" || Hidden.String() != "hidden" {
		t.Error("State.String mismatch")
	}
}

func TestPlatformOf(t *testing.T) {
	tests := map[string]Platform{
		"linux":   PlatformLinux,
		"freebsd": PlatformLinux,
		"windows": PlatformWindows,
		"darwin":  PlatformMacOS,
		"plan9":   PlatformOther,
	}
	for goos, want := range tests {
		if got := PlatformOf(goos); got != want {
			t.Errorf("PlatformOf(%q) = %v, want %v", goos, got, want)
		}
	}
	if PlatformWindows.InstructionsID() != locale.InstructionsWindows || PlatformOther.InstructionsID() != locale.InstructionsOther {
		t.Error("InstructionsID mismatch")
	}
}

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestDesktop_Probe(t *testing.T) {
	tests := []struct {
		name string
		d    Desktop
		want Capability
	}{
		{"linux", Desktop{GOOS: "linux", Getenv: env(nil), DataDir: "/d", Executable: "/bin/organix"}, Installable},
		{"launched from entry", Desktop{GOOS: "linux", Getenv: env(map[string]string{StandaloneEnv: "1"}), DataDir: "/d", Executable: "/x"}, Standalone},
		{"windows", Desktop{GOOS: "windows", Getenv: env(nil), DataDir: "/d", Executable: "/x"}, Unsupported},
		{"no data dir", Desktop{GOOS: "linux", Getenv: env(nil), Executable: "/x"}, Unsupported},
	}
	for _, tt := range tests {
		if got := tt.d.Probe(); got != tt.want {
			t.Errorf("%s: Probe() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDesktop_Install(t *testing.T) {
	dir := t.TempDir()
	d := &Desktop{GOOS: "linux", Getenv: env(nil), DataDir: dir, Executable: "/opt/Organix App/organix"}
	if err := d.Install(); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "applications", "organix.desktop"))
	if err != nil {
		t.Fatalf("entry not written: %v", err)
	}
	want := `Exec=env ORGANIX_STANDALONE=1 "/opt/Organix App/organix" /s`
	if !strings.Contains(string(data), want) {
		t.Errorf("entry = %q, want line %q", data, want)
	}

	d.GOOS = "darwin"
	if err := d.Install(); err == nil {
		t.Error("Install() on darwin succeeded")
	}
}

func TestQuoteExec(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/organix": "/usr/bin/organix",
		"/a b/organix":     `"/a b/organix"`,
		`/a$b/"x"`:         `"/a\$b/\"x\""`,
		`C:\Program Files`: `"C:\\Program Files"`,
	}
	for in, want := range tests {
		if got := quoteExec(in); got != want {
			t.Errorf("quoteExec(%q) = %q, want %q", in, got, want)
		}
	}
}
