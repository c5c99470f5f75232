package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
)

func loadTestDocument(t *testing.T, content string) *Document {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, testPath, content)
	doc, err := LoadDocument(fs, Source{Path: testPath, Exists: true}, Reference())
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	return doc
}

func TestLoadDocument_DefaultsOnly(t *testing.T) {
	doc, err := LoadDocument(afero.NewMemMapFs(), Source{Path: testPath}, Reference())
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	token, err := doc.String("token")
	if err != nil {
		t.Fatalf("String(token) failed: %v", err)
	}
	if token != tokenPlaceholder {
		t.Errorf("token = %q, want placeholder", token)
	}

	owner, err := doc.Int64("owner")
	if err != nil || owner != 0 {
		t.Errorf("owner = %d, %v; want 0", owner, err)
	}
}

func TestLoadDocument_UserOverridesDefaults(t *testing.T) {
	doc := loadTestDocument(t, `
prefix = "!"
maxtime = 600
updatealerts = false

[aliases]
play = ["p"]
`)

	if got, _ := doc.String("prefix"); got != "!" {
		t.Errorf("prefix = %q, want %q", got, "!")
	}
	if got, _ := doc.Int64("maxtime"); got != 600 {
		t.Errorf("maxtime = %d, want 600", got)
	}
	if got, _ := doc.Bool("updatealerts"); got {
		t.Errorf("updatealerts = true, want user value false")
	}
	if got, _ := doc.String("help"); got != "help" {
		t.Errorf("help = %q, want default", got)
	}
	if got := doc.Strings("aliases.play"); len(got) != 1 || got[0] != "p" {
		t.Errorf("aliases.play = %v, want [p]", got)
	}
	if got := doc.Strings("aliases.nowplaying"); len(got) != 2 || got[0] != "np" || got[1] != "current" {
		t.Errorf("aliases.nowplaying = %v, want default [np current]", got)
	}
}

func TestLoadDocument_CaseInsensitiveKeys(t *testing.T) {
	doc := loadTestDocument(t, "Prefix = \"?\"\n")
	if got, _ := doc.String("PREFIX"); got != "?" {
		t.Errorf("PREFIX = %q, want %q", got, "?")
	}
}

func TestLoadDocument_Malformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, testPath, "token = \nowner = [")

	_, err := LoadDocument(fs, Source{Path: testPath, Exists: true}, Reference())
	if !errors.Is(err, ErrConfigFormat) {
		t.Fatalf("expected ErrConfigFormat, got %v", err)
	}

	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if cfgErr.Path != testPath {
		t.Errorf("Path = %q, want %q", cfgErr.Path, testPath)
	}
	if cfgErr.Guidance == "" {
		t.Error("expected guidance for a format error")
	}
}

func TestLoadDocument_MalformedDefaults(t *testing.T) {
	_, err := LoadDocument(afero.NewMemMapFs(), Source{Path: testPath}, []byte("token = "))
	if !errors.Is(err, ErrConfigFormat) {
		t.Fatalf("expected ErrConfigFormat, got %v", err)
	}
}

func TestDocument_TypedAccessors(t *testing.T) {
	doc := loadTestDocument(t, `
prefix = ["a", "b"]
owner = "not a number"
eval = "maybe"
maxtime = 1.5
help = 42

[aliases]
play = "p"
`)

	if _, err := doc.String("prefix"); !errors.Is(err, ErrWrongType) {
		t.Errorf("String(prefix) error = %v, want ErrWrongType", err)
	}
	if _, err := doc.Int64("owner"); !errors.Is(err, ErrWrongType) {
		t.Errorf("Int64(owner) error = %v, want ErrWrongType", err)
	}
	if _, err := doc.Bool("eval"); !errors.Is(err, ErrWrongType) {
		t.Errorf("Bool(eval) error = %v, want ErrWrongType", err)
	}
	if _, err := doc.Int64("maxtime"); !errors.Is(err, ErrWrongType) {
		t.Errorf("Int64(maxtime) error = %v, want ErrWrongType", err)
	}
	if got, err := doc.String("help"); err != nil || got != "42" {
		t.Errorf("String(help) = %q, %v; want number converted to text", got, err)
	}
	if _, err := doc.String("nonexistent"); !errors.Is(err, ErrMissingKey) {
		t.Errorf("String(nonexistent) error = %v, want ErrMissingKey", err)
	}
	if got := doc.Strings("aliases.play"); len(got) != 0 {
		t.Errorf("aliases.play = %v, want empty for a non-list value", got)
	}
	if got := doc.Strings("aliases.unknown"); got == nil || len(got) != 0 {
		t.Errorf("aliases.unknown = %#v, want empty non-nil slice", got)
	}
}

func TestDocument_Snapshot(t *testing.T) {
	doc := loadTestDocument(t, "prefix = \"!\"\nextra = \"kept\"\n")

	snap, err := doc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap["prefix"] != "!" {
		t.Errorf("prefix = %v, want user value", snap["prefix"])
	}
	if snap["help"] != "help" {
		t.Errorf("help = %v, want default", snap["help"])
	}
	if snap["extra"] != "kept" {
		t.Errorf("extra = %v, want user-only key kept", snap["extra"])
	}
	if _, ok := snap["aliases"].(map[string]any); !ok {
		t.Errorf("aliases = %T, want nested table", snap["aliases"])
	}
}

func TestDocument_PrecedenceProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	keys := []string{"prefix", "help", "success", "playlistsfolder", "game"}

	properties.Property("user value wins for keys in both layers, default otherwise", prop.ForAll(
		func(idx int, value string) bool {
			key := keys[idx]
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, testPath, []byte(fmt.Sprintf("%s = %q\n", key, value)), 0o644); err != nil {
				return false
			}
			doc, err := LoadDocument(fs, Source{Path: testPath, Exists: true}, Reference())
			if err != nil {
				return false
			}
			defaults, err := LoadDocument(fs, Source{Path: testPath}, Reference())
			if err != nil {
				return false
			}

			for i, k := range keys {
				got, err := doc.String(k)
				if err != nil {
					return false
				}
				want, _ := defaults.String(k)
				if i == idx {
					want = value
				}
				if got != want {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(keys)-1),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
