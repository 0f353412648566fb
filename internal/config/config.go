package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/critic/internal/config/loader"
	"github.com/dshills/critic/internal/engine"
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/markup"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = loader.DefaultPrefix

// Settings is the decoded configuration of a session.
type Settings struct {
	// Author and Label stamp new suggestions. Empty means no metadata.
	Author string
	Label  string
	// Timestamps adds the time field to new suggestions.
	Timestamps bool
	// LogLevel is a zap level name.
	LogLevel string
	Policies policy.Table
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		LogLevel: "info",
		Policies: policy.Default(),
	}
}

// EngineOptions returns the session options carrying s.
func (s Settings) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithPolicy(s.Policies),
		engine.WithAuthor(s.Author),
		engine.WithLabel(s.Label),
		engine.WithTimestamps(s.Timestamps),
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs      loader.FileSystem
	environ func() []string
}

// WithFS reads settings files from fs instead of the OS.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnviron replaces the environment read for CRITIC_* variables.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// DefaultPaths returns the settings files looked up by the CLI: the user
// files under the OS configuration directory, then the project files in
// the working directory.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "critic", "config.toml"),
			filepath.Join(dir, "critic", "config.yaml"))
	}
	return append(paths, ".critic.toml", ".critic.yaml")
}

// Load merges the defaults, every file in paths and the environment, and
// decodes the result. Missing files are skipped.
func Load(paths []string, opts ...Option) (Settings, error) {
	o := options{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	loaders := make([]loader.Loader, 0, len(paths)+1)
	for _, p := range paths {
		loaders = append(loaders, loader.ForPath(o.fs, p))
	}
	loaders = append(loaders, newEnvLoader(o.environ))

	merged, err := loader.LoadAll(loaders...)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(merged)
}

// newEnvLoader maps CRITIC_<KIND>_<FIELD> onto kinds.<kind>.<field>; the
// other variables follow the loader's section_key rule.
func newEnvLoader(environ func() []string) *loader.EnvLoader {
	l := loader.NewEnvLoader(EnvPrefix)
	if environ != nil {
		l.WithEnviron(environ)
	}
	for _, k := range markup.Kinds {
		for _, field := range []string{"movement", "bracket", "edit"} {
			env := EnvPrefix + strings.ToUpper(k.String()+"_"+field)
			l.AddMapping(env, "kinds."+k.String()+"."+field)
		}
	}
	return l
}

// FromMap decodes a merged configuration map on top of Default. All
// problems are reported together.
func FromMap(m map[string]any) (Settings, error) {
	s := Default()
	d := &decoder{}

	for _, key := range sortedKeys(m) {
		v := m[key]
		switch key {
		case "author":
			s.Author = d.str(key, v)
		case "label":
			s.Label = d.str(key, v)
		case "timestamps":
			s.Timestamps = d.boolean(key, v)
		case "log":
			d.section(key, v, func(k string, v any) {
				if k != "level" {
					d.unknown(key+"."+k, v)
					return
				}
				s.LogLevel = d.str(key+"."+k, v)
			})
		case "kinds":
			d.section(key, v, func(name string, v any) {
				kind, ok := markup.ParseKind(name)
				if !ok || !kind.Valid() {
					d.unknown(key+"."+name, v)
					return
				}
				span := s.Policies.For(kind)
				d.section(key+"."+name, v, func(k string, v any) {
					d.kindField(key+"."+name+"."+k, k, v, &span)
				})
				s.Policies.Set(kind, span)
			})
		case "merge":
			d.section(key, v, func(k string, v any) {
				d.mergeField(key+"."+k, k, v, &s.Policies.Merge)
			})
		default:
			d.unknown(key, v)
		}
	}

	if len(d.errs) > 0 {
		return s, errors.Join(d.errs...)
	}
	return s, nil
}

type decoder struct {
	errs []error
}

func (d *decoder) fail(path string, v any, code ValidationErrorCode, msg string) {
	d.errs = append(d.errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
}

func (d *decoder) unknown(path string, v any) {
	d.fail(path, v, ErrCodeUnknownSetting, "unknown setting")
}

func (d *decoder) str(path string, v any) string {
	s, ok := v.(string)
	if !ok {
		d.fail(path, v, ErrCodeTypeMismatch, fmt.Sprintf("expected string, got %T", v))
	}
	return s
}

func (d *decoder) boolean(path string, v any) bool {
	b, ok := v.(bool)
	if !ok {
		d.fail(path, v, ErrCodeTypeMismatch, fmt.Sprintf("expected bool, got %T", v))
	}
	return b
}

func (d *decoder) section(path string, v any, fn func(key string, v any)) {
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(path, v, ErrCodeTypeMismatch, fmt.Sprintf("expected table, got %T", v))
		return
	}
	for _, k := range sortedKeys(m) {
		fn(k, m[k])
	}
}

// enum parses a string value with parse, recording any failure.
func enum[T any](d *decoder, path string, v any, parse func(string) (T, error), dst *T) {
	s, ok := v.(string)
	if !ok {
		d.fail(path, v, ErrCodeTypeMismatch, fmt.Sprintf("expected string, got %T", v))
		return
	}
	val, err := parse(s)
	if err != nil {
		d.fail(path, v, ErrCodeInvalidEnum, err.Error())
		return
	}
	*dst = val
}

func (d *decoder) kindField(path, key string, v any, span *policy.Span) {
	switch key {
	case "movement":
		enum(d, path, v, policy.ParseMovement, &span.Movement)
	case "bracket":
		enum(d, path, v, policy.ParseBracket, &span.Bracket)
	case "edit":
		enum(d, path, v, policy.ParseEditMode, &span.Edit)
	default:
		d.unknown(path, v)
	}
}

func (d *decoder) mergeField(path, key string, v any, m *policy.Merge) {
	switch key {
	case markup.FieldAuthor:
		enum(d, path, v, policy.ParseFieldPolicy, &m.Author)
	case markup.FieldTime:
		enum(d, path, v, policy.ParseFieldPolicy, &m.Time)
	case markup.FieldLabel:
		enum(d, path, v, policy.ParseFieldPolicy, &m.Label)
	default:
		d.unknown(path, v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
