package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID          = "run_id"
	KeyTask           = "task"
	KeyState          = "state"
	KeyDurationMS     = "duration_ms"
	KeyConfigFile     = "config_file"
	KeyBuildDir       = "build_dir"
	KeyClasspathGroup = "classpath_group"
	KeyModuleGroup    = "module_group"
	KeyModule         = "module"
	KeyExportID       = "export_id"
	KeyPath           = "path"
	KeyCount          = "count"
	KeyCommand        = "command"
	KeyError          = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr            { return slog.String(KeyRunID, id) }
func Task(name string) slog.Attr           { return slog.String(KeyTask, name) }
func State(s string) slog.Attr             { return slog.String(KeyState, s) }
func DurationMS(ms float64) slog.Attr      { return slog.Float64(KeyDurationMS, ms) }
func ConfigFile(p string) slog.Attr        { return slog.String(KeyConfigFile, p) }
func BuildDir(p string) slog.Attr          { return slog.String(KeyBuildDir, p) }
func ClasspathGroup(name string) slog.Attr { return slog.String(KeyClasspathGroup, name) }
func ModuleGroup(name string) slog.Attr    { return slog.String(KeyModuleGroup, name) }
func Module(name string) slog.Attr         { return slog.String(KeyModule, name) }
func ExportID(id string) slog.Attr         { return slog.String(KeyExportID, id) }
func Path(p string) slog.Attr              { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr                { return slog.Int(KeyCount, n) }
func Command(c string) slog.Attr           { return slog.String(KeyCommand, c) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
