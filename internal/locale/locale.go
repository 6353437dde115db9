// Package locale provides the UI strings in English and Japanese.
package locale

import (
	"embed"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	golocale "github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"organix/internal/logging"
)

// Message ids.
const (
	VisitLabel          = "VisitLabel"
	VisitCount          = "VisitCount"
	VisitTooltip        = "VisitTooltip"
	SettingsTitle       = "SettingsTitle"
	BrightnessLabel     = "BrightnessLabel"
	LightMode           = "LightMode"
	DarkMode            = "DarkMode"
	SettingsHint        = "SettingsHint"
	InstallButton       = "InstallButton"
	InstallHint         = "InstallHint"
	InstallConfirm      = "InstallConfirm"
	InstallDone         = "InstallDone"
	InstructionsTitle   = "InstructionsTitle"
	InstructionsClose   = "InstructionsClose"
	InstructionsLinux   = "InstructionsLinux"
	InstructionsWindows = "InstructionsWindows"
	InstructionsMacOS   = "InstructionsMacOS"
	InstructionsOther   = "InstructionsOther"
	ScrollTop           = "ScrollTop"
	VisitWebsite        = "VisitWebsite"
	Save                = "Save"
)

// Supported languages.
const (
	English  = "en"
	Japanese = "ja"
)

//go:embed messages/*.toml
var messageFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

func sharedBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, name := range []string{"messages/active.en.toml", "messages/active.ja.toml"} {
			if _, err := bundle.LoadMessageFileFS(messageFS, name); err != nil {
				// Embedded files are fixed at build time.
				panic("locale: " + err.Error())
			}
		}
	})
	return bundle
}

// Localizer looks up messages in one language, falling back to English.
type Localizer struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a localizer for lang. Unsupported languages use English.
func New(lang string) *Localizer {
	lang = Supported(lang)
	return &Localizer{lang: lang, loc: i18n.NewLocalizer(sharedBundle(), lang, English)}
}

// Lang returns the language in use.
func (l *Localizer) Lang() string {
	return l.lang
}

// Lookup returns the message for id, or an error when no language has it.
func (l *Localizer) Lookup(id string) (string, error) {
	return l.loc.Localize(&i18n.LocalizeConfig{MessageID: id})
}

// T returns the message for id, or id itself when it is unknown.
func (l *Localizer) T(id string) string {
	s, err := l.Lookup(id)
	if err != nil {
		logging.L().Debug("missing message", "id", id, "lang", l.lang, "err", err)
		return id
	}
	return s
}

// Count returns the plural form of id for n, with n available as {{.Count}}.
func (l *Localizer) Count(id string, n int) string {
	s, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		logging.L().Debug("missing message", "id", id, "lang", l.lang, "err", err)
		return id
	}
	return s
}

// Supported maps a language code or locale ("ja_JP.UTF-8", "ja-JP") to a
// supported language.
func Supported(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "_-."); i >= 0 {
		code = code[:i]
	}
	if code == Japanese {
		return Japanese
	}
	return English
}

// Detect returns override when it is set, otherwise the user's locale.
func Detect(override string) string {
	if strings.TrimSpace(override) != "" {
		return Supported(override)
	}
	lang, err := golocale.GetLanguage()
	if err != nil {
		logging.L().Debug("locale detection failed", "err", err)
		return English
	}
	return Supported(lang)
}
