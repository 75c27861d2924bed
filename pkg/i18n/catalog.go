package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Activator switches the application's active translation catalog.
// Activate is synchronous: once it returns, text resolves in the new locale.
type Activator interface {
	Activate(Locale) error
}

// Message keys for the built-in catalog.
const (
	KeyTitle  = "app.title"
	KeyReload = "app.reload"
	KeyLocale = "app.locale"
)

var builtin = map[Locale]map[string]string{
	ZhCN: {
		KeyTitle:  "管理后台",
		KeyReload: "重新加载",
		KeyLocale: "语言",
	},
	En: {
		KeyTitle:  "Admin Console",
		KeyReload: "Reload",
		KeyLocale: "Language",
	},
}

// Catalog is an Activator backed by an x/text message catalog.
type Catalog struct {
	builder *catalog.Builder

	mu      sync.RWMutex
	active  Locale
	printer *message.Printer
}

// NewCatalog creates a catalog with the built-in messages registered and
// the default locale active.
func NewCatalog() *Catalog {
	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(Default.Tag())),
	}
	for locale, messages := range builtin {
		for key, msg := range messages {
			// Built-in keys and tags are static; SetString cannot fail for them.
			_ = c.builder.SetString(locale.Tag(), key, msg)
		}
	}
	c.active = Default
	c.printer = message.NewPrinter(Default.Tag(), message.Catalog(c.builder))
	return c
}

// Register adds or replaces a message for a locale.
func (c *Catalog) Register(locale Locale, key, msg string) error {
	if !locale.Valid() {
		return fmt.Errorf("register %q: unsupported locale %q", key, locale)
	}
	return c.builder.SetString(locale.Tag(), key, msg)
}

// Activate makes locale the active locale.
func (c *Catalog) Activate(locale Locale) error {
	if !locale.Valid() {
		return fmt.Errorf("activate: unsupported locale %q", locale)
	}

	p := message.NewPrinter(locale.Tag(), message.Catalog(c.builder))

	c.mu.Lock()
	c.active = locale
	c.printer = p
	c.mu.Unlock()
	return nil
}

// Active returns the active locale.
func (c *Catalog) Active() Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Printer returns the printer for the active locale.
func (c *Catalog) Printer() *message.Printer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.printer
}

// Sprintf formats the message registered under key in the active locale.
func (c *Catalog) Sprintf(key string, args ...any) string {
	return c.Printer().Sprintf(key, args...)
}

// Languages returns the tags the catalog has messages for.
func (c *Catalog) Languages() []language.Tag {
	return c.builder.Languages()
}
