package showcase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"organix/internal/config"
	"organix/internal/install"
	"organix/internal/locale"
	"organix/internal/overlay"
	"organix/internal/visits"
)

type fixedProber install.Capability

func (p fixedProber) Probe() install.Capability { return install.Capability(p) }

type fakeInstaller struct {
	calls int
	err   error
}

func (f *fakeInstaller) Install() error {
	f.calls++
	return f.err
}

func newComposer(opts Options) *Composer {
	if opts.Width == 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	return New(opts)
}

func TestStart_CountsVisitAndBuildsTitle(t *testing.T) {
	c := newComposer(Options{})
	v := "4"
	store := &visits.MemoryStore{Value: &v}
	title := c.Start(store)
	if title != "Organix (5 visits) - Neon Japanese Experience" {
		t.Errorf("title = %q", title)
	}
	if c.Visits() != 5 || *store.Value != "5" || store.Writes != 1 {
		t.Errorf("visits %d, stored %q, writes %d", c.Visits(), *store.Value, store.Writes)
	}
}

func TestStart_FirstVisit(t *testing.T) {
	c := newComposer(Options{})
	if title := c.Start(&visits.MemoryStore{}); !strings.Contains(title, "(1 visits)") {
		t.Errorf("title = %q", title)
	}
}

func TestStart_NilStoreSkipsCounting(t *testing.T) {
	c := newComposer(Options{})
	c.Start(nil)
	if c.Visits() != 0 {
		t.Errorf("Visits() = %d", c.Visits())
	}
	for _, b := range c.HUD() {
		if b.Anchor == overlay.TopRight {
			t.Error("visit counter shown without counting")
		}
	}
}

func TestStart_ProbesInstallSupport(t *testing.T) {
	tests := []struct {
		capability install.Capability
		want       install.State
	}{
		{install.Installable, install.Promptable},
		{install.Standalone, install.Hidden},
		{install.Unsupported, install.Idle},
	}
	for _, tt := range tests {
		c := newComposer(Options{Prober: fixedProber(tt.capability)})
		c.Start(nil)
		if got := c.InstallState(); got != tt.want {
			t.Errorf("%v: state = %v, want %v", tt.capability, got, tt.want)
		}
	}
}

func TestInputs_FlipsPointerAndCarriesBrightness(t *testing.T) {
	c := newComposer(Options{Width: 200, Height: 100})
	c.PointerMoved(150, 25)
	c.Key(KeyBrightnessUp)
	c.Key(KeyBrightnessUp)

	in := c.Inputs(1500 * time.Millisecond)
	if in.Time != 1.5 {
		t.Errorf("Time = %v", in.Time)
	}
	if in.Pointer != [2]float32{0.5, 0.5} {
		t.Errorf("Pointer = %v, want [0.5 0.5]", in.Pointer)
	}
	if in.Brightness != 1.2 {
		t.Errorf("Brightness = %v, want 1.2", in.Brightness)
	}
}

func TestKey_BrightnessClamps(t *testing.T) {
	c := newComposer(Options{})
	for range 30 {
		c.Key(KeyBrightnessDown)
	}
	if got := c.Settings().Brightness; got != 0.1 {
		t.Errorf("Brightness = %v, want 0.1", got)
	}
	for range 30 {
		c.Key(KeyBrightnessUp)
	}
	if got := c.Settings().Brightness; got != 2 {
		t.Errorf("Brightness = %v, want 2", got)
	}
}

func TestKey_ThemeAndPanel(t *testing.T) {
	c := newComposer(Options{})
	if !c.Settings().Dark {
		t.Fatal("dark theme should be the default")
	}
	c.Key(KeyToggleTheme)
	if c.Settings().Dark {
		t.Error("theme not toggled")
	}
	c.Key(KeyToggleSettings)
	if !c.SettingsOpen() {
		t.Error("settings panel not opened")
	}
	var found bool
	for _, b := range c.HUD() {
		if b.Anchor == overlay.BottomLeft {
			found = true
			// Light theme offers the dark mode switch.
			if !strings.Contains(strings.Join(b.Lines, "\n"), "Dark Mode") {
				t.Errorf("panel lines = %q", b.Lines)
			}
		}
	}
	if !found {
		t.Error("settings panel not in HUD")
	}
}

func TestKey_InstallAccepted(t *testing.T) {
	inst := &fakeInstaller{}
	c := newComposer(Options{Prober: fixedProber(install.Installable), Installer: inst})
	c.Start(nil)
	c.Key(KeyInstall)
	if c.InstallState() != install.Prompted {
		t.Fatalf("state = %v, want prompted", c.InstallState())
	}
	c.Key(KeyAccept)
	if inst.calls != 1 || c.InstallState() != install.Accepted {
		t.Errorf("calls %d, state %v", inst.calls, c.InstallState())
	}
	if _, ok := c.installBlock(); ok {
		t.Error("install affordance visible after accepting")
	}
}

func TestKey_InstallFailureCountsAsDismissed(t *testing.T) {
	inst := &fakeInstaller{err: errors.New("read-only")}
	c := newComposer(Options{Prober: fixedProber(install.Installable), Installer: inst})
	c.Start(nil)
	c.Key(KeyInstall)
	c.Key(KeyAccept)
	if c.InstallState() != install.Dismissed {
		t.Errorf("state = %v, want dismissed", c.InstallState())
	}
}

func TestKey_AcceptWithoutPromptIgnored(t *testing.T) {
	inst := &fakeInstaller{}
	c := newComposer(Options{Prober: fixedProber(install.Installable), Installer: inst})
	c.Start(nil)
	c.Key(KeyAccept)
	if inst.calls != 0 {
		t.Error("installer ran without a prompt")
	}
}

func TestKey_InstructionsFallback(t *testing.T) {
	c := newComposer(Options{
		Prober:    fixedProber(install.Unsupported),
		Platform:  install.PlatformWindows,
		Localizer: locale.New(locale.English),
	})
	c.Start(nil)
	c.Key(KeyInstall)
	b, ok := c.installBlock()
	if !ok {
		t.Fatal("no install block")
	}
	text := strings.Join(b.Lines, "\n")
	if !strings.Contains(text, "Installation Instructions") || !strings.Contains(text, "Windows") {
		t.Errorf("instructions = %q", text)
	}
	c.Key(KeyCloseInstructions)
	b, _ = c.installBlock()
	if strings.Contains(strings.Join(b.Lines, "\n"), "Installation Instructions") {
		t.Error("instructions still shown after close")
	}
}

func TestStandalone_NoInstallAffordance(t *testing.T) {
	c := newComposer(Options{Prober: fixedProber(install.Standalone)})
	c.Start(nil)
	c.Key(KeyInstall)
	if _, ok := c.installBlock(); ok {
		t.Error("install affordance visible in standalone mode")
	}
}

func TestScroll(t *testing.T) {
	c := newComposer(Options{})
	c.Scrolled(-6)
	if !c.Tracker().ShowScrollTop() {
		t.Fatalf("ScrollY = %v, want past the threshold", c.Tracker().ScrollY)
	}
	c.Key(KeyScrollTop)
	if c.Tracker().ScrollY != 0 {
		t.Errorf("ScrollY = %v after scroll-to-top", c.Tracker().ScrollY)
	}
	c.Scrolled(3)
	if c.Tracker().ScrollY != 0 {
		t.Error("scrolled above the top")
	}
}

func TestResize_RebuildsFieldOnlyOnLayoutChange(t *testing.T) {
	c := newComposer(Options{Width: 1920, Height: 1080})
	f := c.field
	c.Resize(1930, 1080)
	if c.field != f {
		t.Error("field rebuilt although the leaf count is unchanged")
	}
	c.Resize(700, 1080)
	if c.field == f || !c.Tracker().Narrow {
		t.Error("field not rebuilt for the narrow layout")
	}
	if got := len(c.field.Leaves()); got != overlay.GlyphCount*overlay.LeavesPerGlyph(700, true) {
		t.Errorf("len(leaves) = %d", got)
	}
}

func TestApplyConfig(t *testing.T) {
	c := newComposer(Options{})
	cfg := config.Default()
	cfg.Brightness = 1.7
	cfg.DarkMode = false
	c.ApplyConfig(cfg)
	s := c.Settings()
	if s.Brightness != 1.7 || s.Dark {
		t.Errorf("settings = %+v", s)
	}
}

func TestOverlay(t *testing.T) {
	c := newComposer(Options{Width: 800, Height: 400})
	c.Start(&visits.MemoryStore{})
	img, err := c.Overlay(time.Unix(0, 0), 800, 400)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 400 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	var drawn int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("overlay is empty")
	}
	if _, err := c.Overlay(time.Unix(0, 0), 0, 400); err == nil {
		t.Error("Overlay(0x400) succeeded")
	}
}

func TestOverlay_FullHDFrameTime(t *testing.T) {
	if testing.Short() {
		t.Skip("frame timing")
	}
	c := newComposer(Options{Width: 1920, Height: 1080})
	c.Start(&visits.MemoryStore{})
	c.Key(KeyToggleSettings)
	now := time.Unix(1_700_000_000, 0)
	if _, err := c.Overlay(now, 1920, 1080); err != nil {
		t.Fatal(err)
	}

	const frames = 20
	start := time.Now()
	for i := range frames {
		c.PointerMoved(float64(i*90), float64(i*50))
		if _, err := c.Overlay(now.Add(time.Duration(i)*16*time.Millisecond), 1920, 1080); err != nil {
			t.Fatal(err)
		}
	}
	if per := time.Since(start) / frames; per > 100*time.Millisecond {
		t.Errorf("overlay frame at 1920x1080 took %v", per)
	}
}

func TestHUD_VisitCounter(t *testing.T) {
	tests := []struct {
		lang     string
		line     string
		stored   string
		numerals string
	}{
		{locale.English, "1 time", "0", "一回"},
		{locale.English, "12 times", "11", "一二回"},
		{locale.Japanese, "1回", "0", "一回"},
	}
	for _, tt := range tests {
		c := newComposer(Options{Localizer: locale.New(tt.lang)})
		v := tt.stored
		c.Start(&visits.MemoryStore{Value: &v})
		var found bool
		for _, b := range c.HUD() {
			if b.Anchor != overlay.TopRight {
				continue
			}
			found = true
			if b.Numerals != tt.numerals {
				t.Errorf("%s: numerals = %q, want %q", tt.lang, b.Numerals, tt.numerals)
			}
			if len(b.Lines) < 2 || b.Lines[1] != tt.line {
				t.Errorf("%s: lines = %q, want count line %q", tt.lang, b.Lines, tt.line)
			}
		}
		if !found {
			t.Errorf("%s: no visit counter", tt.lang)
		}
	}
}

func TestPreview_NoHUD(t *testing.T) {
	c := newComposer(Options{Preview: true, Prober: fixedProber(install.Installable)})
	c.Start(nil)
	c.Key(KeyToggleSettings)
	if blocks := c.HUD(); len(blocks) != 0 {
		t.Errorf("HUD() = %d blocks in preview", len(blocks))
	}
}
