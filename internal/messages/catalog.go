// Package messages renders the operator-facing texts used while loading
// configuration. Each message is a text/template with sprig helpers.
package messages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Key identifies a message in the catalog
type Key string

const (
	TokenPrompt  Key = "token_prompt"
	OwnerPrompt  Key = "owner_prompt"
	TokenMissing Key = "token_missing"
	OwnerInvalid Key = "owner_invalid"
	DumpFailure  Key = "dump_failure"
	LoadFailure  Key = "load_failure"
)

// Data is the context every message template is executed with
type Data struct {
	Path string
	Err  error
}

var builtin = map[Key]string{
	TokenPrompt: `Please provide a bot token.
Instructions for creating a bot account and copying its token are in the setup guide.
Bot Token: `,
	OwnerPrompt: `Owner ID was missing, or the provided owner ID is not valid.
Please provide the User ID of the bot's owner.
Owner User ID: `,
	TokenMissing: `No token provided! Exiting.

Config Location: {{ location .Path }}`,
	OwnerInvalid: `Invalid User ID! Exiting.

Config Location: {{ location .Path }}`,
	DumpFailure: `Failed to write new config options to {{ base .Path }}: {{ .Err }}
Please make sure that the files are not on your desktop or some other restricted area.

Config Location: {{ location .Path }}`,
	LoadFailure: `{{ .Err | toString | trim }}

Config Location: {{ location .Path }}`,
}

// Catalog holds parsed message templates
type Catalog struct {
	templates map[Key]*template.Template
}

// NewCatalog parses the built-in messages. overrides replace built-in
// texts by key and may add new ones.
func NewCatalog(overrides map[Key]string) (*Catalog, error) {
	texts := make(map[Key]string, len(builtin)+len(overrides))
	for k, v := range builtin {
		texts[k] = v
	}
	for k, v := range overrides {
		texts[k] = v
	}

	c := &Catalog{templates: make(map[Key]*template.Template, len(texts))}
	for key, text := range texts {
		tmpl, err := template.New(string(key)).Funcs(funcMap()).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message %s: %w", key, err)
		}
		c.templates[key] = tmpl
	}
	return c, nil
}

// Default returns the catalog of built-in messages
func Default() *Catalog {
	c, err := NewCatalog(nil)
	if err != nil {
		// built-in texts are compiled in; a parse failure is a programming error
		panic(err)
	}
	return c
}

// Render executes the message identified by key
func (c *Catalog) Render(key Key, data Data) (string, error) {
	tmpl, ok := c.templates[key]
	if !ok {
		return "", fmt.Errorf("message not found: %s", key)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute message %s: %w", key, err)
	}
	return buf.String(), nil
}

// Text is Render without the error; failures are folded into the text so
// an alert is never lost.
func (c *Catalog) Text(key Key, data Data) string {
	s, err := c.Render(key, data)
	if err != nil {
		return fmt.Sprintf("%s (path=%s, err=%v, render=%v)", key, data.Path, data.Err, err)
	}
	return s
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["location"] = ContractPath
	return funcs
}

// ContractPath replaces the home directory prefix of path with ~
func ContractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return path
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	if path == homeDir {
		return "~"
	}
	if strings.HasPrefix(path, homeDirWithSlash) {
		return "~" + path[len(homeDir):]
	}
	return path
}
