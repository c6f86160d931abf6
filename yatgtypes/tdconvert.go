package yatgtypes

import (
	"strconv"

	"github.com/gotd/td/tg"
)

// FromTDEntities converts MTProto entities, as received by gotd clients, into
// Bot API entities. Offsets are UTF-16 in both protocols and are copied
// as is. Entities without a Bot API counterpart are skipped.
//
// Example usage:
//
//	entities := yatgtypes.FromTDEntities(tdMessage.Entities)
//	refs := yatgentities.Resolve(tdMessage.Message, entities)
func FromTDEntities(entities []tg.MessageEntityClass) []MessageEntity {
	result := make([]MessageEntity, 0, len(entities))

	for _, entity := range entities {
		converted := MessageEntity{Offset: entity.GetOffset(), Length: entity.GetLength()}

		switch e := entity.(type) {
		case *tg.MessageEntityMention:
			converted.Type = EntityTypeMention
		case *tg.MessageEntityHashtag:
			converted.Type = EntityTypeHashtag
		case *tg.MessageEntityCashtag:
			converted.Type = EntityTypeCashtag
		case *tg.MessageEntityBotCommand:
			converted.Type = EntityTypeBotCommand
		case *tg.MessageEntityURL:
			converted.Type = EntityTypeURL
		case *tg.MessageEntityEmail:
			converted.Type = EntityTypeEmail
		case *tg.MessageEntityPhone:
			converted.Type = EntityTypePhoneNumber
		case *tg.MessageEntityBold:
			converted.Type = EntityTypeBold
		case *tg.MessageEntityItalic:
			converted.Type = EntityTypeItalic
		case *tg.MessageEntityUnderline:
			converted.Type = EntityTypeUnderline
		case *tg.MessageEntityStrike:
			converted.Type = EntityTypeStrikethrough
		case *tg.MessageEntitySpoiler:
			converted.Type = EntityTypeSpoiler
		case *tg.MessageEntityCode:
			converted.Type = EntityTypeCode
		case *tg.MessageEntityPre:
			converted.Type = EntityTypePre
			converted.Language = e.Language
		case *tg.MessageEntityTextURL:
			converted.Type = EntityTypeTextLink
			converted.URL = e.URL
		case *tg.MessageEntityMentionName:
			converted.Type = EntityTypeTextMention
			converted.User = &User{ID: e.UserID}
		case *tg.MessageEntityCustomEmoji:
			converted.Type = EntityTypeCustomEmoji
			converted.CustomEmojiID = strconv.FormatInt(e.DocumentID, 10)
		default:
			continue
		}

		result = append(result, converted)
	}

	return result
}

// ToTDEntities is the inverse of FromTDEntities. Custom emoji entities with a
// malformed id are skipped.
func ToTDEntities(entities []MessageEntity) []tg.MessageEntityClass {
	result := make([]tg.MessageEntityClass, 0, len(entities))

	for _, e := range entities {
		offset, length := e.Offset, e.Length

		var converted tg.MessageEntityClass

		switch e.Type {
		case EntityTypeMention:
			converted = &tg.MessageEntityMention{Offset: offset, Length: length}
		case EntityTypeHashtag:
			converted = &tg.MessageEntityHashtag{Offset: offset, Length: length}
		case EntityTypeCashtag:
			converted = &tg.MessageEntityCashtag{Offset: offset, Length: length}
		case EntityTypeBotCommand:
			converted = &tg.MessageEntityBotCommand{Offset: offset, Length: length}
		case EntityTypeURL:
			converted = &tg.MessageEntityURL{Offset: offset, Length: length}
		case EntityTypeEmail:
			converted = &tg.MessageEntityEmail{Offset: offset, Length: length}
		case EntityTypePhoneNumber:
			converted = &tg.MessageEntityPhone{Offset: offset, Length: length}
		case EntityTypeBold:
			converted = &tg.MessageEntityBold{Offset: offset, Length: length}
		case EntityTypeItalic:
			converted = &tg.MessageEntityItalic{Offset: offset, Length: length}
		case EntityTypeUnderline:
			converted = &tg.MessageEntityUnderline{Offset: offset, Length: length}
		case EntityTypeStrikethrough:
			converted = &tg.MessageEntityStrike{Offset: offset, Length: length}
		case EntityTypeSpoiler:
			converted = &tg.MessageEntitySpoiler{Offset: offset, Length: length}
		case EntityTypeCode:
			converted = &tg.MessageEntityCode{Offset: offset, Length: length}
		case EntityTypePre:
			converted = &tg.MessageEntityPre{Offset: offset, Length: length, Language: e.Language}
		case EntityTypeTextLink:
			converted = &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: e.URL}
		case EntityTypeTextMention:
			if e.User == nil {
				continue
			}

			converted = &tg.MessageEntityMentionName{Offset: offset, Length: length, UserID: e.User.ID}
		case EntityTypeCustomEmoji:
			id, err := strconv.ParseInt(e.CustomEmojiID, 10, 64)
			if err != nil {
				continue
			}

			converted = &tg.MessageEntityCustomEmoji{Offset: offset, Length: length, DocumentID: id}
		default:
			continue
		}

		result = append(result, converted)
	}

	return result
}
