package service

import (
	"fmt"
	"strings"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// reportedLabel is applied to every issue the bot creates.
const reportedLabel = "user-reported"

// Compose builds the issue fields from the command input and the fetched
// source message. Pure: no I/O, identical inputs yield identical output.
func Compose(req domain.IssueRequest, msg domain.SourceMessage) domain.ComposedIssue {
	return domain.ComposedIssue{
		Title:     req.Title,
		Body:      composeBody(msg),
		Labels:    append([]string{reportedLabel}, SplitList(req.Labels)...),
		Assignees: SplitList(req.Assignees),
	}
}

func composeBody(msg domain.SourceMessage) string {
	content := msg.Content
	if content == "" {
		content = "*No text content*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Reported by:** %s (%s)\n", msg.AuthorMention, msg.AuthorName)
	fmt.Fprintf(&b, "**Discord Server:** %s\n", msg.GuildName)
	fmt.Fprintf(&b, "**Channel:** %s\n", msg.ChannelName)
	fmt.Fprintf(&b, "**Link to Discord message:** %s\n", msg.JumpURL)
	fmt.Fprintf(&b, "**Message created:** %s\n\n", msg.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Original message content:**\n%s", content)

	if len(msg.Attachments) > 0 {
		fmt.Fprintf(&b, "\n\n**Attachments (%d):**\n", len(msg.Attachments))
		for _, a := range msg.Attachments {
			fmt.Fprintf(&b, "- [%s](%s)\n", a.Filename, a.URL)
		}
	}

	return b.String()
}

// SplitList splits a comma-separated list, trimming surrounding whitespace and
// dropping empty tokens (as produced by consecutive or trailing commas).
func SplitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, token := range strings.Split(s, ",") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}
