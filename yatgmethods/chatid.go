package yatgmethods

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ChatID addresses a chat either by numeric id or by the @username of a
// public channel or supergroup.
type ChatID struct {
	id       int64
	username string
}

func ChatIDFromInt(id int64) ChatID {
	return ChatID{id: id}
}

// ChatIDFromUsername accepts the username with or without the leading @.
func ChatIDFromUsername(username string) ChatID {
	return ChatID{username: "@" + strings.TrimPrefix(username, "@")}
}

func (c ChatID) IsZero() bool {
	return c.id == 0 && c.username == ""
}

func (c ChatID) String() string {
	if c.username != "" {
		return c.username
	}

	return strconv.FormatInt(c.id, 10)
}

func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.username != "" {
		return json.Marshal(c.username)
	}

	return json.Marshal(c.id)
}

func (c *ChatID) UnmarshalJSON(data []byte) error {
	var username string
	if err := json.Unmarshal(data, &username); err == nil {
		*c = ChatIDFromUsername(username)

		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}

	*c = ChatIDFromInt(id)

	return nil
}
