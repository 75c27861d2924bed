package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Locale Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryLocale,
		Message:  "Unsupported locale",
		Detail:   "Only zh-CN and en are supported.",
	},
	"E101": {
		Category: CategoryLocale,
		Message:  "Locale activation failed",
		Detail:   "The in-memory locale was updated but the translation catalog could not be switched.",
	},
	"E102": {
		Category: CategoryLocale,
		Message:  "Locale persistence failed",
		Detail:   "The locale was activated but could not be written to the key-value store.",
	},
	"E103": {
		Category: CategoryLocale,
		Message:  "Locale load failed",
		Detail:   "The persisted locale could not be read; the default locale is used instead.",
	},

	// ============================================
	// Reload Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryReload,
		Message:  "Reload interrupted",
		Detail:   "The reload delay ended early; the reload flag stays false until the next reload.",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The appstore.json file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No appstore.json was found in the given directory.",
	},

	// ============================================
	// Storage Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryStorage,
		Message:  "Storage backend unavailable",
		Detail:   "The configured key-value backend could not be opened.",
	},

	// ============================================
	// Breakpoint Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryBreakpoint,
		Message:  "Unknown breakpoint",
		Detail:   "The breakpoint name is not part of the configured table.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
