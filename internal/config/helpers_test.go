package config

import (
	"testing"

	"github.com/spf13/afero"

	"tunebot/internal/interfaces"
	"tunebot/internal/logger"
)

const testPath = "/srv/tunebot/config.toml"

type answer struct {
	text string
	ok   bool
}

type alert struct {
	level   interfaces.Level
	context string
	message string
}

// scriptedPrompt replays answers in order and declines once they run out
type scriptedPrompt struct {
	answers []answer
	asked   []string
	alerts  []alert
}

func answers(texts ...string) *scriptedPrompt {
	p := &scriptedPrompt{}
	for _, t := range texts {
		p.answers = append(p.answers, answer{text: t, ok: true})
	}
	return p
}

func (p *scriptedPrompt) Ask(message string) (string, bool) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.text, a.ok
}

func (p *scriptedPrompt) Alert(level interfaces.Level, context, message string) {
	p.alerts = append(p.alerts, alert{level: level, context: context, message: message})
}

func noEnv(string) string { return "" }

func newTestConfig(fs afero.Fs, prompt interfaces.Prompt, opts ...Option) *Config {
	base := []Option{
		WithFs(fs),
		WithOverride(testPath),
		WithEnv(noEnv),
		WithLogger(logger.Discard()),
	}
	return New(prompt, append(base, opts...)...)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(b)
}
