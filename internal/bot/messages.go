package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// messageSource fetches Discord messages for the issue service.
type messageSource struct {
	session *discordgo.Session
}

func newMessageSource(session *discordgo.Session) *messageSource {
	return &messageSource{session: session}
}

// FetchMessage retrieves the message by id within the invoking channel,
// reduced to the fields the issue body embeds. A 404 from Discord maps to
// domain.ErrSourceNotFound.
func (m *messageSource) FetchMessage(ctx context.Context, guildID, channelID string, messageID int64) (*domain.SourceMessage, error) {
	msg, err := m.session.ChannelMessage(channelID, strconv.FormatInt(messageID, 10), discordgo.WithContext(ctx))
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return nil, domain.ErrSourceNotFound
		}
		return nil, fmt.Errorf("fetch channel message: %w", err)
	}

	src := &domain.SourceMessage{
		ID:            messageID,
		AuthorMention: msg.Author.Mention(),
		AuthorName:    displayName(msg.Author),
		GuildName:     m.guildName(guildID),
		ChannelName:   m.channelName(channelID),
		JumpURL:       jumpURL(guildID, channelID, msg.ID),
		Content:       msg.Content,
		CreatedAt:     msg.Timestamp,
	}
	for _, a := range msg.Attachments {
		src.Attachments = append(src.Attachments, domain.Attachment{
			Filename: a.Filename,
			URL:      a.URL,
		})
	}
	return src, nil
}

func displayName(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// guildName resolves the guild's display name, preferring the session state
// cache over a REST call.
func (m *messageSource) guildName(guildID string) string {
	if guildID == "" {
		return "DM"
	}
	if g, err := m.session.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	if g, err := m.session.Guild(guildID); err == nil {
		return g.Name
	}
	return guildID
}

func (m *messageSource) channelName(channelID string) string {
	if ch, err := m.session.State.Channel(channelID); err == nil && ch.Name != "" {
		return ch.Name
	}
	if ch, err := m.session.Channel(channelID); err == nil && ch.Name != "" {
		return ch.Name
	}
	return "DM"
}

func jumpURL(guildID, channelID, messageID string) string {
	if guildID == "" {
		guildID = "@me"
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
