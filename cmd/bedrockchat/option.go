package bedrockchat

// Options is the root command. The struct tags are interpreted by
// github.com/jessevdk/go-flags; every flag is optional and no flags starts an
// interactive chat with the default profile.
type Options struct {
	Config  string `short:"f" long:"config" description:"chat config YAML/JSON/TOML path or URL (embedded default when empty)"`
	Model   string `short:"m" long:"model" description:"chat profile id, e.g. claude or nova"`
	Log     string `short:"l" long:"log" description:"file to append JSON exchange events"`
	Diag    bool   `long:"diag" description:"start gops diagnostics agent"`
	Version bool   `short:"v" long:"version" description:"print version and exit"`
}
