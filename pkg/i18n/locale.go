// Package i18n defines the supported display locales and the service that
// switches the active translation catalog.
package i18n

import "golang.org/x/text/language"

// Locale is a supported display locale.
type Locale string

const (
	ZhCN Locale = "zh-CN"
	En   Locale = "en"
)

// Default is the locale used when nothing valid has been persisted.
const Default = ZhCN

var tags = map[Locale]language.Tag{
	ZhCN: language.MustParse("zh-CN"),
	En:   language.English,
}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	return []Locale{ZhCN, En}
}

// Parse converts s to a Locale. It reports false for anything outside the
// supported set.
func Parse(s string) (Locale, bool) {
	l := Locale(s)
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	_, ok := tags[l]
	return ok
}

// Tag returns the BCP 47 tag for l, or language.Und if l is unsupported.
func (l Locale) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return language.Und
}

func (l Locale) String() string {
	return string(l)
}

// Option is a selectable locale with its display label.
type Option struct {
	Label string `json:"label"`
	Key   Locale `json:"key"`
}

// Options returns the locale picker entries, each labelled in its own language.
func Options() []Option {
	return []Option{
		{Label: "中文", Key: ZhCN},
		{Label: "English", Key: En},
	}
}
