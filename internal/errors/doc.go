// Package errors provides coded, structured errors for the app store.
//
// Every error carries a short code (e.g. "E101") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Errors wrap their cause so errors.Is and errors.As keep working.
//
// # Error Categories
//
//   - locale: locale activation, persistence and loading
//   - reload: reload pulse interruptions
//   - config: appstore.json loading and validation
//   - storage: key-value backend failures
//   - breakpoint: breakpoint table lookups
//
// # Usage
//
//	err := errors.New("E102").
//	    WithDetail("key \"lang\"").
//	    Wrap(cause)
//
//	errors.HasCode(err, "E102") // true
//	fmt.Fprint(os.Stderr, err.Format())
package errors
