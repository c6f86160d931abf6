package yatgtypes

import "fmt"

// User is a Telegram user or bot.
type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`
}

// FullName joins the first and the last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

// MentionURL is the tg:// link used by text_mention entities.
func (u *User) MentionURL() string {
	return fmt.Sprintf("tg://user?id=%d", u.ID)
}

type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

func (t *ChatType) UnmarshalText(text []byte) error {
	switch parsed := ChatType(text); parsed {
	case ChatTypePrivate, ChatTypeGroup, ChatTypeSupergroup, ChatTypeChannel:
		*t = parsed

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChatType, text)
	}
}

// Chat is a private chat, a group, a supergroup or a channel. Which of the
// optional fields are set depends on Type and on the method that returned it.
type Chat struct {
	ID                  int64      `json:"id"`
	Type                ChatType   `json:"type"`
	Title               string     `json:"title,omitempty"`
	Username            string     `json:"username,omitempty"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	IsForum             bool       `json:"is_forum,omitempty"`
	Photo               *ChatPhoto `json:"photo,omitempty"`
	Bio                 string     `json:"bio,omitempty"`
	Description         string     `json:"description,omitempty"`
	InviteLink          string     `json:"invite_link,omitempty"`
	PinnedMessage       *Message   `json:"pinned_message,omitempty"`
	SlowModeDelay       int        `json:"slow_mode_delay,omitempty"`
	LinkedChatID        int64      `json:"linked_chat_id,omitempty"`
	HasProtectedContent bool       `json:"has_protected_content,omitempty"`
}

func (c *Chat) IsPrivate() bool { return c.Type == ChatTypePrivate }

func (c *Chat) IsGroup() bool { return c.Type == ChatTypeGroup || c.Type == ChatTypeSupergroup }

func (c *Chat) IsChannel() bool { return c.Type == ChatTypeChannel }

type ChatPhoto struct {
	SmallFileID       string `json:"small_file_id"`
	SmallFileUniqueID string `json:"small_file_unique_id"`
	BigFileID         string `json:"big_file_id"`
	BigFileUniqueID   string `json:"big_file_unique_id"`
}
