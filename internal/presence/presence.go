// Package presence parses the status and activity strings from the
// configuration file into structured descriptors.
package presence

import (
	"strings"
	"unicode"
)

// Status is the online status shown for the bot account
type Status string

const (
	StatusOnline    Status = "online"
	StatusIdle      Status = "idle"
	StatusDND       Status = "dnd"
	StatusInvisible Status = "invisible"
	StatusOffline   Status = "offline"
)

// ParseStatus matches s case-insensitively against the known statuses.
// Empty and unrecognised values fall back to online.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusIdle:
		return StatusIdle
	case StatusDND:
		return StatusDND
	case StatusInvisible:
		return StatusInvisible
	case StatusOffline:
		return StatusOffline
	default:
		return StatusOnline
	}
}

// ActivityType is the verb shown in front of an activity name
type ActivityType int

const (
	Playing ActivityType = iota
	Listening
	Watching
	Streaming
)

func (t ActivityType) String() string {
	switch t {
	case Listening:
		return "listening"
	case Watching:
		return "watching"
	case Streaming:
		return "streaming"
	default:
		return "playing"
	}
}

// Activity is what the bot reports it is doing
type Activity struct {
	Type ActivityType
	Name string
	URL  string // set for Streaming only
}

const twitchBaseURL = "https://twitch.tv/"

// zero-width space; activity names may not be empty
const blankName = "\u200b"

// ParseActivity turns strings such as "Playing Minecraft", "Listening to
// music" or "Streaming channel Title" into an Activity. It returns nil for
// an empty value or "default", meaning no custom activity.
func ParseActivity(s string) *Activity {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return nil
	}

	if rest, ok := cutPrefixFold(s, "playing"); ok {
		return &Activity{Type: Playing, Name: nonEmpty(rest)}
	}
	if rest, ok := cutPrefixFold(s, "listening to"); ok {
		return &Activity{Type: Listening, Name: nonEmpty(rest)}
	}
	if rest, ok := cutPrefixFold(s, "listening"); ok {
		return &Activity{Type: Listening, Name: nonEmpty(rest)}
	}
	if rest, ok := cutPrefixFold(s, "watching"); ok {
		return &Activity{Type: Watching, Name: nonEmpty(rest)}
	}
	if rest, ok := cutPrefixFold(s, "streaming"); ok {
		if i := strings.IndexFunc(rest, unicode.IsSpace); i > 0 {
			channel := rest[:i]
			title := strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
			return &Activity{Type: Streaming, Name: nonEmpty(title), URL: twitchBaseURL + channel}
		}
	}

	return &Activity{Type: Playing, Name: s}
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

func nonEmpty(s string) string {
	if s == "" {
		return blankName
	}
	return s
}
