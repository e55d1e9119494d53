package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestParseIssueRequest(t *testing.T) {
	tests := []struct {
		name     string
		options  []*discordgo.ApplicationCommandInteractionDataOption
		expected domain.IssueRequest
	}{
		{
			name: "all options",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				stringOption("message_id", "987654321"),
				stringOption("title", "Something broke"),
				stringOption("labels", "bug,urgent"),
				stringOption("assignees", "user1,user2"),
			},
			expected: domain.IssueRequest{
				MessageID: "987654321",
				Title:     "Something broke",
				Labels:    "bug,urgent",
				Assignees: "user1,user2",
			},
		},
		{
			name: "required options only",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				stringOption("message_id", "987654321"),
				stringOption("title", "Something broke"),
			},
			expected: domain.IssueRequest{
				MessageID: "987654321",
				Title:     "Something broke",
			},
		},
		{
			name: "unknown option ignored",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				stringOption("message_id", "987654321"),
				stringOption("title", "Something broke"),
				stringOption("priority", "high"),
			},
			expected: domain.IssueRequest{
				MessageID: "987654321",
				Title:     "Something broke",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := discordgo.ApplicationCommandInteractionData{
				Name:    "create-issue",
				Options: tt.options,
			}
			assert.Equal(t, tt.expected, parseIssueRequest(data))
		})
	}
}

func TestIsAdministrator(t *testing.T) {
	tests := []struct {
		name     string
		member   *discordgo.Member
		expected bool
	}{
		{
			name:     "no member data (DM)",
			member:   nil,
			expected: false,
		},
		{
			name:     "administrator bit set",
			member:   &discordgo.Member{Permissions: discordgo.PermissionAdministrator},
			expected: true,
		},
		{
			name:     "administrator among other bits",
			member:   &discordgo.Member{Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages},
			expected: true,
		},
		{
			name:     "no administrator bit",
			member:   &discordgo.Member{Permissions: discordgo.PermissionSendMessages | discordgo.PermissionManageMessages},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{Member: tt.member},
			}
			assert.Equal(t, tt.expected, isAdministrator(i))
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{Permissions: discordgo.PermissionAdministrator},
		},
	}
	assert.NoError(t, authorize(admin))

	regular := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{Permissions: discordgo.PermissionSendMessages},
		},
	}
	assert.ErrorIs(t, authorize(regular), domain.ErrPermissionDenied)
}

func TestJumpURL(t *testing.T) {
	assert.Equal(t,
		"https://discord.com/channels/1/2/3",
		jumpURL("1", "2", "3"),
	)
	assert.Equal(t,
		"https://discord.com/channels/@me/2/3",
		jumpURL("", "2", "3"),
	)
}
