// Package buildinfo holds values stamped in at link time with -ldflags -X.
package buildinfo

var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"builtAt": BuiltAt,
	}
}

// UserAgent identifies this service on outbound supplier calls.
func UserAgent() string {
	if Commit != "" {
		return "dropship-bridge/" + Version + " (" + Commit + ")"
	}
	return "dropship-bridge/" + Version
}
