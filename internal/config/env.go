package config

// envBinding maps an environment variable to a setting path.
type envBinding struct {
	env  string
	path string
}

// envBindings are applied in order, so a later variable bound to the same
// path wins.
var envBindings = []envBinding{
	{"TRILEX_LOG_LEVEL", "log.level"},
	{"TRILEX_LOG_FILE", "log.file"},
	{"TRILEX_STORE", "store.backend"},
	{"TRILEX_GIST_ID", "store.gist_id"},
	{"GITHUB_TOKEN", "store.token"},
	{"TRILEX_GITHUB_TOKEN", "store.token"},
	{"TRILEX_DIR", "store.dir"},
	{"TRILEX_SQLITE", "store.sqlite"},
	{"TRILEX_PROVIDER", "translate.provider"},
	{"OPENAI_MODEL", "translate.model"},
	{"TRILEX_MODEL", "translate.model"},
	{"OPENAI_API_KEY", "translate.openai_api_key"},
	{"ANTHROPIC_API_KEY", "translate.anthropic_api_key"},
	{"GEMINI_API_KEY", "translate.gemini_api_key"},
	{"TRILEX_KEY_SCRIPT", "keys.script"},
}

// loadEnv returns the settings present in the environment. Values are
// kept as strings; every bound setting is a string.
func loadEnv(lookup func(string) (string, bool)) map[string]any {
	out := make(map[string]any)
	for _, b := range envBindings {
		if v, ok := lookup(b.env); ok && v != "" {
			setByPath(out, b.path, v)
		}
	}
	return out
}
