package config

import (
	"strings"

	"tunebot/internal/presence"
)

// privilegedOwnerID is a single reserved user id. The flag derived from it
// is exposed as-is without further meaning.
const privilegedOwnerID int64 = 113156185389092864

const (
	aliasesKey      = "aliases"
	disabledSetting = "NONE"
)

// extract reads every setting from doc. A missing key or a value of the
// wrong type stops extraction with the first error.
func (c *Config) extract(doc *Document) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"token", &c.token},
		{"prefix", &c.prefix},
		{"altprefix", &c.altPrefix},
		{"help", &c.helpWord},
		{"success", &c.successEmoji},
		{"warning", &c.warningEmoji},
		{"error", &c.errorEmoji},
		{"loading", &c.loadingEmoji},
		{"searching", &c.searchingEmoji},
		{"playlistsfolder", &c.playlistsFolder},
	}
	for _, f := range strs {
		v, err := doc.String(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"stayinchannel", &c.stayInChannel},
		{"songinstatus", &c.songInStatus},
		{"npimages", &c.npImages},
		{"updatealerts", &c.updateAlerts},
		{"eval", &c.useEval},
	}
	for _, f := range bools {
		v, err := doc.Bool(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	var err error
	if c.owner, err = doc.Int64("owner"); err != nil {
		return err
	}
	if c.maxSeconds, err = doc.Int64("maxtime"); err != nil {
		return err
	}

	game, err := doc.String("game")
	if err != nil {
		return err
	}
	c.activity = presence.ParseActivity(game)

	status, err := doc.String("status")
	if err != nil {
		return err
	}
	c.status = presence.ParseStatus(status)

	c.altPrefixSet = !strings.EqualFold(c.altPrefix, disabledSetting)
	if !c.altPrefixSet {
		c.altPrefix = ""
	}
	c.privilegedOwner = c.owner == privilegedOwnerID
	return nil
}
