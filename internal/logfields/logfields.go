package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyLanguage    = "language"
	KeyCategory    = "category"
	KeyEntry       = "entry"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyPages       = "pages"
	KeyFingerprint = "fingerprint"
	KeyMethod      = "method"
	KeyStatus      = "status"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Language(code string) slog.Attr  { return slog.String(KeyLanguage, code) }
func Category(name string) slog.Attr  { return slog.String(KeyCategory, name) }
func Entry(path string) slog.Attr     { return slog.String(KeyEntry, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Fingerprint(fp string) slog.Attr { return slog.String(KeyFingerprint, fp) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
