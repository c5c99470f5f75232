package config

import (
	"strconv"
	"strings"

	"tunebot/internal/interfaces"
	"tunebot/internal/messages"
)

// tokenPlaceholder is the token value shipped in the default document
const tokenPlaceholder = "BOT_TOKEN_HERE"

// ownerPlaceholder is the owner assignment shipped in the default document
const ownerPlaceholder = "0 # OWNER ID"

// repair asks for the token, then the owner, when either is missing or
// still a placeholder. dirty reports whether anything was filled in.
func (c *Config) repair() (dirty bool, outcome interfaces.Outcome) {
	data := messages.Data{Path: c.source.Path}

	if TokenMissing(c.token) {
		answer, ok := c.prompt.Ask(c.messages.Text(messages.TokenPrompt, data))
		if !ok {
			c.lastErr = NewTokenDeclinedError(c.source.Path)
			c.prompt.Alert(interfaces.LevelWarning, alertContext, c.messages.Text(messages.TokenMissing, data))
			return false, interfaces.OutcomeAborted
		}
		c.token = answer
		dirty = true
	}

	if c.owner <= 0 {
		c.owner = 0
		if answer, ok := c.prompt.Ask(c.messages.Text(messages.OwnerPrompt, data)); ok {
			if id, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64); err == nil {
				c.owner = id
			}
		}
		if c.owner <= 0 {
			c.owner = 0
			c.lastErr = NewOwnerInvalidError(c.source.Path)
			c.prompt.Alert(interfaces.LevelError, alertContext, c.messages.Text(messages.OwnerInvalid, data))
			return dirty, interfaces.OutcomeExit
		}
		c.privilegedOwner = c.owner == privilegedOwnerID
		dirty = true
	}

	return dirty, interfaces.OutcomeValid
}

// TokenMissing reports whether token is empty or still the placeholder
func TokenMissing(token string) bool {
	return token == "" || strings.EqualFold(token, tokenPlaceholder)
}
