package config

import (
	"bytes"
	_ "embed"
	"errors"
	"strings"

	"dario.cat/mergo"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

//go:embed reference.toml
var referenceTOML []byte

// Reference returns the compiled-in default document
func Reference() []byte {
	return bytes.Clone(referenceTOML)
}

// referencePath labels the default layer in error messages
const referencePath = "<built-in defaults>"

// Document is the user file layered over the default document. Lookups
// try the user layer first and fall back to the defaults.
type Document struct {
	path     string
	user     *viper.Viper
	defaults *viper.Viper
}

// LoadDocument parses reference as the default layer and, when src exists,
// the file at src.Path as the user layer. Each call builds fresh layers, so
// edits made to the file since the previous load are always observed.
func LoadDocument(fs afero.Fs, src Source, reference []byte) (*Document, error) {
	defaults := newLayer(fs)
	if err := defaults.ReadConfig(bytes.NewReader(reference)); err != nil {
		return nil, NewFormatError(referencePath, oops.In("config").With("layer", "defaults").Wrapf(err, "parse defaults"))
	}

	user := newLayer(fs)
	if src.Exists {
		user.SetConfigFile(src.Path)
		if err := user.ReadInConfig(); err != nil {
			cause := oops.In("config").With("path", src.Path).Wrapf(err, "read user layer")
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, NewFormatError(src.Path, cause)
			}
			return nil, NewReadError(src.Path, cause)
		}
	}

	return &Document{path: src.Path, user: user, defaults: defaults}, nil
}

func newLayer(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")
	return v
}

// Path returns the location of the user layer
func (d *Document) Path() string {
	return d.path
}

// Lookup returns the value of key from the first layer that sets it
func (d *Document) Lookup(key string) (any, bool) {
	key = strings.ToLower(key)
	for _, layer := range []*viper.Viper{d.user, d.defaults} {
		if layer.IsSet(key) {
			return layer.Get(key), true
		}
	}
	return nil, false
}

// Has reports whether any layer sets key
func (d *Document) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// String reads key as a string. Scalars are converted; tables and lists are
// rejected.
func (d *Document) String(key string) (string, error) {
	v, err := d.required(key)
	if err != nil {
		return "", err
	}
	switch v.(type) {
	case map[string]any, []any:
		return "", d.wrongType(key, oops.In("config").Errorf("expected a string, got %T", v))
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", d.wrongType(key, err)
	}
	return s, nil
}

// Int64 reads key as a 64-bit integer
func (d *Document) Int64(key string) (int64, error) {
	v, err := d.required(key)
	if err != nil {
		return 0, err
	}
	if f, ok := v.(float64); ok && f != float64(int64(f)) {
		return 0, d.wrongType(key, oops.In("config").Errorf("expected an integer, got %v", f))
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, d.wrongType(key, err)
	}
	return n, nil
}

// Bool reads key as a boolean
func (d *Document) Bool(key string) (bool, error) {
	v, err := d.required(key)
	if err != nil {
		return false, err
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, d.wrongType(key, err)
	}
	return b, nil
}

// Strings reads key as a list of strings. A missing key yields an empty
// list, as does a value that is not a list.
func (d *Document) Strings(key string) []string {
	v, ok := d.Lookup(key)
	if !ok {
		return []string{}
	}
	if _, isList := v.([]any); !isList {
		if _, isStrings := v.([]string); !isStrings {
			return []string{}
		}
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return []string{}
	}
	return list
}

// Snapshot returns the merged tree, user values over defaults
func (d *Document) Snapshot() (map[string]any, error) {
	merged := d.defaults.AllSettings()
	if merged == nil {
		merged = map[string]any{}
	}
	if err := mergo.Merge(&merged, d.user.AllSettings(), mergo.WithOverride); err != nil {
		return nil, oops.In("config").With("path", d.path).Wrapf(err, "merge layers")
	}
	return merged, nil
}

func (d *Document) required(key string) (any, error) {
	v, ok := d.Lookup(key)
	if !ok {
		e := NewMissingKeyError(key)
		e.Path = d.path
		return nil, e
	}
	return v, nil
}

func (d *Document) wrongType(key string, cause error) error {
	return NewWrongTypeError(d.path, key, oops.In("config").With("key", key).Wrapf(cause, "convert %s", key))
}
