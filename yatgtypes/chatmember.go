package yatgtypes

type ChatMemberStatus string

const (
	ChatMemberStatusCreator       ChatMemberStatus = "creator"
	ChatMemberStatusAdministrator ChatMemberStatus = "administrator"
	ChatMemberStatusMember        ChatMemberStatus = "member"
	ChatMemberStatusRestricted    ChatMemberStatus = "restricted"
	ChatMemberStatusLeft          ChatMemberStatus = "left"
	ChatMemberStatusKicked        ChatMemberStatus = "kicked"
)

// ChatMember flattens the six member variants. Permission fields are only
// meaningful for the administrator and restricted statuses.
type ChatMember struct {
	Status             ChatMemberStatus `json:"status"`
	User               User             `json:"user"`
	IsAnonymous        bool             `json:"is_anonymous,omitempty"`
	CustomTitle        string           `json:"custom_title,omitempty"`
	CanBeEdited        bool             `json:"can_be_edited,omitempty"`
	CanManageChat      bool             `json:"can_manage_chat,omitempty"`
	CanDeleteMessages  bool             `json:"can_delete_messages,omitempty"`
	CanRestrictMembers bool             `json:"can_restrict_members,omitempty"`
	CanPromoteMembers  bool             `json:"can_promote_members,omitempty"`
	CanChangeInfo      bool             `json:"can_change_info,omitempty"`
	CanInviteUsers     bool             `json:"can_invite_users,omitempty"`
	CanPinMessages     bool             `json:"can_pin_messages,omitempty"`
	IsMember           bool             `json:"is_member,omitempty"`
	CanSendMessages    bool             `json:"can_send_messages,omitempty"`
	UntilDate          int64            `json:"until_date,omitempty"`
}

// IsPresent reports whether the user is currently in the chat.
func (m *ChatMember) IsPresent() bool {
	switch m.Status {
	case ChatMemberStatusCreator, ChatMemberStatusAdministrator, ChatMemberStatusMember:
		return true
	case ChatMemberStatusRestricted:
		return m.IsMember
	default:
		return false
	}
}

type ChatInviteLink struct {
	InviteLink              string `json:"invite_link"`
	Creator                 User   `json:"creator"`
	CreatesJoinRequest      bool   `json:"creates_join_request"`
	IsPrimary               bool   `json:"is_primary"`
	IsRevoked               bool   `json:"is_revoked"`
	Name                    string `json:"name,omitempty"`
	ExpireDate              int64  `json:"expire_date,omitempty"`
	MemberLimit             int    `json:"member_limit,omitempty"`
	PendingJoinRequestCount int    `json:"pending_join_request_count,omitempty"`
}

type ChatMemberUpdated struct {
	Chat          Chat            `json:"chat"`
	From          User            `json:"from"`
	Date          int64           `json:"date"`
	OldChatMember ChatMember      `json:"old_chat_member"`
	NewChatMember ChatMember      `json:"new_chat_member"`
	InviteLink    *ChatInviteLink `json:"invite_link,omitempty"`
}

type ChatJoinRequest struct {
	Chat       Chat            `json:"chat"`
	From       User            `json:"from"`
	UserChatID int64           `json:"user_chat_id"`
	Date       int64           `json:"date"`
	Bio        string          `json:"bio,omitempty"`
	InviteLink *ChatInviteLink `json:"invite_link,omitempty"`
}
