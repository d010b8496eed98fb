// Package settings registers named plugin settings and mediates access to
// their stored values.
//
// A Setting carries static metadata: group, type, default, REST visibility
// and an optional sanitizer. The Registry keeps settings in registration
// order and reads and writes values through an OptionStore. Reads of a
// setting that was never written return its default.
package settings
