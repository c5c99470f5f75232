package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"tunebot/internal/interfaces"
	"tunebot/internal/logger"
)

// Prompter asks the operator for missing values on the console and routes
// alerts to the logger
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	noPrompt   bool
	log        logger.Logger
	isTerminal func() bool
	askOne     func(message string) (string, error)
}

var _ interfaces.Prompt = (*Prompter)(nil)

// Option configures a Prompter
type Option func(*Prompter)

// WithInput reads answers from r instead of stdin. Answers are then always
// read line by line.
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.in = bufio.NewReader(r)
		p.isTerminal = func() bool { return false }
	}
}

// WithOutput writes questions to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.out = w
	}
}

// WithNoPrompt makes every question go unanswered
func WithNoPrompt(noPrompt bool) Option {
	return func(p *Prompter) {
		p.noPrompt = noPrompt
	}
}

// WithLogger sets the logger alerts are written to
func WithLogger(l logger.Logger) Option {
	return func(p *Prompter) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPrompter creates a new console prompter
func NewPrompter(opts ...Option) *Prompter {
	p := &Prompter{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		log:        logger.Default(),
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		askOne:     surveyInput,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask shows message and returns the trimmed answer. ok is false when no
// answer was given: prompting disabled, interrupt, end of input or an empty
// line.
func (p *Prompter) Ask(message string) (answer string, ok bool) {
	if p.noPrompt {
		p.log.Debug("prompt skipped", "noprompt", true)
		return "", false
	}

	var err error
	if p.isTerminal() {
		answer, err = p.askTerminal(message)
	} else {
		answer, err = p.askLine(message)
	}
	if err != nil {
		if !errors.Is(err, terminal.InterruptErr) && !errors.Is(err, io.EOF) {
			p.log.Warn("reading answer failed", "error", err)
		}
		return "", false
	}

	answer = strings.TrimSpace(answer)
	return answer, answer != ""
}

// Alert reports a problem at the given severity
func (p *Prompter) Alert(level interfaces.Level, context, message string) {
	switch level {
	case interfaces.LevelError:
		p.log.Error(message, "context", context)
	default:
		p.log.Warn(message, "context", context)
	}
}

// askTerminal prints all but the last line of message and asks the last
// line with a survey input
func (p *Prompter) askTerminal(message string) (string, error) {
	head, question := splitQuestion(message)
	if head != "" {
		fmt.Fprintln(p.out, head)
	}
	return p.askOne(question)
}

// askLine is the fallback when stdin is not a terminal
func (p *Prompter) askLine(message string) (string, error) {
	fmt.Fprintf(p.out, "%s\n> ", message)

	line, err := p.in.ReadString('\n')
	if err != nil {
		// a final line without a newline still counts as an answer
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func surveyInput(message string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

func splitQuestion(message string) (head, question string) {
	message = strings.TrimRight(message, "\n")
	i := strings.LastIndex(message, "\n")
	if i < 0 {
		return "", message
	}
	return message[:i], message[i+1:]
}
