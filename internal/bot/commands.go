package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

var administratorOnly = int64(discordgo.PermissionAdministrator)

// commands are the application commands registered on startup.
var commands = []*discordgo.ApplicationCommand{
	{
		Name:                     "create-issue",
		Description:              "Create a GitHub issue from a Discord message.",
		DefaultMemberPermissions: &administratorOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message_id",
				Description: "The ID of the Discord message to use for the issue body.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "The title of the GitHub issue.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "labels",
				Description: "A comma-separated list of labels to apply (e.g. 'bug,feature').",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "assignees",
				Description: "A comma-separated list of GitHub usernames to assign (e.g. 'user1,user2').",
			},
		},
	},
	{
		Name:                     "health",
		Description:              "Check bot health status (Admin only).",
		DefaultMemberPermissions: &administratorOnly,
	},
}

// parseIssueRequest extracts the create-issue options from the interaction
// data.
func parseIssueRequest(data discordgo.ApplicationCommandInteractionData) domain.IssueRequest {
	var req domain.IssueRequest
	for _, opt := range data.Options {
		if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		switch opt.Name {
		case "message_id":
			req.MessageID = opt.StringValue()
		case "title":
			req.Title = opt.StringValue()
		case "labels":
			req.Labels = opt.StringValue()
		case "assignees":
			req.Assignees = opt.StringValue()
		}
	}
	return req
}

// isAdministrator reports whether the invoking member carries the
// administrator permission bit. Interactions without member data (DMs) are
// never authorized.
func isAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// authorize enforces the administrator requirement shared by every command.
func authorize(i *discordgo.InteractionCreate) error {
	if !isAdministrator(i) {
		return domain.ErrPermissionDenied
	}
	return nil
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
