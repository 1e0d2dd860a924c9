package mapping

import (
	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// asciiOnly replaces every rune outside printable ASCII (0x20-0x7E) with one
// space. Control bytes, tab and DEL included. Invalid UTF-8 is seen as
// utf8.RuneError and replaced too.
var asciiOnly = runes.Map(func(r rune) rune {
	if r < 0x20 || r > 0x7E {
		return ' '
	}
	return r
})

// Sanitize makes chat text safe for ASCII-only consumers.
func Sanitize(s string) string {
	out, _, err := transform.String(asciiOnly, s)
	if err != nil {
		return s
	}
	return out
}

// -----------------------------------------------------------------------------

// MapChatBox maps the public chat buffer in the buffer's own order. A
// missing buffer is normal (nothing said yet) and gives an empty chat box.
func MapChatBox(src interfaces.IGameStateSource) (models.MChatBox, error) {
	buffer, err := src.ChatLineBuffer(models.ChatPublic)
	if err != nil {
		return models.MChatBox{}, helpers.NewSourceUnavailable("chat", err)
	}

	box := models.MChatBox{Messages: []models.MMessage{}}
	if buffer == nil {
		return box, nil
	}

	for _, line := range buffer.Lines {
		if line == nil {
			continue
		}
		box.Messages = append(box.Messages, models.MMessage{
			Content:   Sanitize(line.Value),
			Sender:    Sanitize(line.Name),
			Timestamp: line.Timestamp,
		})
	}
	return box, nil
}
