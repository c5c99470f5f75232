// Package config resolves the service configuration: it layers the user's
// config file over the built-in defaults, reads every setting, asks the
// operator for a missing token or owner, and writes repaired values back so
// the next start does not ask again.
package config

import (
	"os"
	"time"

	"github.com/spf13/afero"

	"tunebot/internal/interfaces"
	"tunebot/internal/logger"
	"tunebot/internal/messages"
	"tunebot/internal/presence"
)

// alertContext tags every alert raised while loading
const alertContext = "Config"

// Config holds the resolved settings. Accessors are only meaningful after
// Load returned interfaces.OutcomeValid; check Valid before first use. A
// Config may be read concurrently once valid, but Load must not run again
// while readers exist.
type Config struct {
	prompt   interfaces.Prompt
	fs       afero.Fs
	getenv   func(string) string
	override string
	template TemplateSource
	defaults []byte
	messages *messages.Catalog
	log      logger.Logger

	source  Source
	doc     *Document
	valid   bool
	lastErr error

	token           string
	prefix          string
	altPrefix       string
	altPrefixSet    bool
	helpWord        string
	playlistsFolder string
	successEmoji    string
	warningEmoji    string
	errorEmoji      string
	loadingEmoji    string
	searchingEmoji  string
	stayInChannel   bool
	songInStatus    bool
	npImages        bool
	updateAlerts    bool
	useEval         bool
	privilegedOwner bool
	owner           int64
	maxSeconds      int64
	status          presence.Status
	activity        *presence.Activity
}

var _ interfaces.ConfigLoader = (*Config)(nil)

// Option configures a Config at construction time
type Option func(*Config)

// WithFs sets the filesystem used to locate, read and write the file
func WithFs(fs afero.Fs) Option {
	return func(c *Config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithOverride selects the configuration file, taking precedence over the
// environment
func WithOverride(path string) Option {
	return func(c *Config) {
		c.override = path
	}
}

// WithEnv replaces os.Getenv for resolving environment overrides
func WithEnv(getenv func(string) string) Option {
	return func(c *Config) {
		if getenv != nil {
			c.getenv = getenv
		}
	}
}

// WithLogger sets the logger for diagnostics
func WithLogger(l logger.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMessages replaces the operator message catalog
func WithMessages(m *messages.Catalog) Option {
	return func(c *Config) {
		if m != nil {
			c.messages = m
		}
	}
}

// WithTemplate replaces the source of the text rewritten on repair
func WithTemplate(src TemplateSource) Option {
	return func(c *Config) {
		if src != nil {
			c.template = src
		}
	}
}

// WithDefaults replaces the default layer document
func WithDefaults(doc []byte) Option {
	return func(c *Config) {
		c.defaults = doc
	}
}

// New creates a Config that asks prompt for missing required values
func New(prompt interfaces.Prompt, opts ...Option) *Config {
	c := &Config{
		prompt:   prompt,
		fs:       afero.NewOsFs(),
		getenv:   os.Getenv,
		template: ReferenceTemplate,
		defaults: referenceTOML,
		messages: messages.Default(),
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load runs locate, merge, extract, repair and, when anything was repaired,
// persist. Failures never escape: they are alerted, kept in LastError and
// reported through the returned outcome.
func (c *Config) Load() interfaces.Outcome {
	c.valid = false
	c.lastErr = nil
	c.doc = nil

	c.source = Locate(c.fs, c.override, c.getenv)
	c.log.Debug("resolved configuration file", "path", c.source.Path, "exists", c.source.Exists, "override", c.source.Override)

	doc, err := LoadDocument(c.fs, c.source, c.defaults)
	if err != nil {
		return c.fail(err)
	}
	c.doc = doc

	if err := c.extract(doc); err != nil {
		return c.fail(err)
	}

	dirty, outcome := c.repair()
	if outcome != interfaces.OutcomeValid {
		return outcome
	}

	if dirty {
		c.persist()
	}

	c.valid = true
	c.log.Debug("configuration loaded", "path", c.source.Path, "repaired", dirty)
	return interfaces.OutcomeValid
}

func (c *Config) fail(err error) interfaces.Outcome {
	c.lastErr = err
	c.prompt.Alert(interfaces.LevelError, alertContext, c.messages.Text(messages.LoadFailure, messages.Data{
		Path: c.source.Path,
		Err:  err,
	}))
	return interfaces.OutcomeAborted
}

// Valid reports whether the last Load completed
func (c *Config) Valid() bool {
	return c.valid
}

// LastError returns the most recent failure recorded by Load, if any. A
// failed write of repaired values is recorded even though Load succeeds.
func (c *Config) LastError() error {
	return c.lastErr
}

// Location returns the absolute path of the live configuration file
func (c *Config) Location() string {
	return c.source.Path
}

// Source returns where the last Load looked for the file
func (c *Config) Source() Source {
	return c.source
}

func (c *Config) Token() string {
	return c.token
}

func (c *Config) Prefix() string {
	return c.prefix
}

// AltPrefix returns the alternate prefix; ok is false when it is disabled
func (c *Config) AltPrefix() (prefix string, ok bool) {
	if !c.altPrefixSet {
		return "", false
	}
	return c.altPrefix, true
}

func (c *Config) OwnerID() int64 {
	return c.owner
}

// PrivilegedOwner reports whether the owner is the reserved well-known id
func (c *Config) PrivilegedOwner() bool {
	return c.privilegedOwner
}

func (c *Config) Help() string {
	return c.helpWord
}

func (c *Config) SuccessEmoji() string {
	return c.successEmoji
}

func (c *Config) WarningEmoji() string {
	return c.warningEmoji
}

func (c *Config) ErrorEmoji() string {
	return c.errorEmoji
}

func (c *Config) LoadingEmoji() string {
	return c.loadingEmoji
}

func (c *Config) SearchingEmoji() string {
	return c.searchingEmoji
}

// Activity returns the configured activity, nil for the default
func (c *Config) Activity() *presence.Activity {
	return c.activity
}

func (c *Config) Status() presence.Status {
	return c.status
}

func (c *Config) StayInChannel() bool {
	return c.stayInChannel
}

func (c *Config) SongInStatus() bool {
	return c.songInStatus
}

func (c *Config) PlaylistsFolder() string {
	return c.playlistsFolder
}

func (c *Config) UpdateAlerts() bool {
	return c.updateAlerts
}

func (c *Config) UseEval() bool {
	return c.useEval
}

func (c *Config) NPImages() bool {
	return c.npImages
}

// MaxSeconds returns the track length ceiling; zero or less means none
func (c *Config) MaxSeconds() int64 {
	return c.maxSeconds
}

// MaxTime renders the ceiling as [H:]MM:SS
func (c *Config) MaxTime() string {
	return FormatSeconds(c.maxSeconds)
}

// IsTooLong reports whether a track of length d exceeds the ceiling
func (c *Config) IsTooLong(d time.Duration) bool {
	return ExceedsLimit(d, c.maxSeconds)
}

// Aliases returns the alternate names of command, in file order. Unknown
// commands have no aliases.
func (c *Config) Aliases(command string) []string {
	if c.doc == nil || command == "" {
		return []string{}
	}
	return c.doc.Strings(aliasesKey + "." + command)
}
