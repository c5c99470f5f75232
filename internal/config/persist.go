package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/oops"
	"github.com/spf13/afero"

	"tunebot/internal/interfaces"
	"tunebot/internal/messages"
)

// TemplateSource returns the original text of the default document; ok is
// false when it is unavailable
type TemplateSource func() (text []byte, ok bool)

// ReferenceTemplate serves the compiled-in default document
func ReferenceTemplate() ([]byte, bool) {
	return Reference(), len(referenceTOML) > 0
}

// persist rewrites the live file with the repaired token and owner. A write
// failure is only alerted; the loaded settings stay usable for this run.
func (c *Config) persist() {
	text, ok := c.template()
	data, err := RenderRepaired(text, ok, c.token, c.owner)
	if err == nil {
		err = writeConfig(c.fs, c.source.Path, data)
	}
	if err != nil {
		c.lastErr = NewPersistError(c.source.Path, err)
		c.prompt.Alert(interfaces.LevelWarning, alertContext, c.messages.Text(messages.DumpFailure, messages.Data{
			Path: c.source.Path,
			Err:  err,
		}))
		return
	}
	c.log.Info("saved configuration", "path", c.source.Path)
}

// repairedValues is the document written when no template is available
type repairedValues struct {
	Token string `toml:"token"`
	Owner int64  `toml:"owner"`
}

// RenderRepaired substitutes token and owner for the placeholders in
// template, leaving all other text untouched. Without a template it emits a
// two-line document holding just those values.
func RenderRepaired(template []byte, ok bool, token string, owner int64) ([]byte, error) {
	if !ok {
		data, err := toml.Marshal(repairedValues{Token: token, Owner: owner})
		if err != nil {
			return nil, oops.In("config").Wrapf(err, "encode repaired values")
		}
		return data, nil
	}

	quoted, err := encodeString(token)
	if err != nil {
		return nil, err
	}
	r := strings.NewReplacer(
		`"`+tokenPlaceholder+`"`, quoted,
		ownerPlaceholder, strconv.FormatInt(owner, 10),
	)
	return []byte(r.Replace(string(template))), nil
}

// encodeString renders s as a TOML string value, quotes included
func encodeString(s string) (string, error) {
	out, err := toml.Marshal(map[string]string{"v": s})
	if err != nil {
		return "", oops.In("config").Wrapf(err, "encode token")
	}
	return strings.TrimSuffix(strings.TrimPrefix(string(out), "v = "), "\n"), nil
}

// writeConfig replaces the file at path with data in a single write
func writeConfig(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.In("config").With("path", path).Wrapf(err, "create config directory")
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return oops.In("config").With("path", path).Wrapf(err, "write config")
	}
	return nil
}
