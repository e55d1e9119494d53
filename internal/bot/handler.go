package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// handleCreateIssue runs the command pipeline: authorize, acknowledge, then
// hand off to the issue service. Only full success produces a public message;
// every failure is reported privately to the invoker.
func (b *Bot) handleCreateIssue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if err := authorize(i); err != nil {
		slog.Warn("command rejected", "user_id", interactionUserID(i), "error", err)
		respondEphemeral(s, i, "❌ You do not have administrator permissions to use this command.")
		return
	}

	// Acknowledge before any network round-trips so the interaction does not
	// hit Discord's response deadline.
	if err := deferEphemeral(s, i); err != nil {
		slog.Error("defer interaction", "error", err)
		return
	}

	req := parseIssueRequest(i.ApplicationCommandData())
	slog.Info("create-issue invoked", "user_id", interactionUserID(i), "message_id", req.MessageID)

	issue, err := b.issues.CreateFromMessage(ctx, i.GuildID, i.ChannelID, req)
	if err != nil {
		slog.Warn("create-issue failed", "message_id", req.MessageID, "error", err)
		followupEphemeral(s, i, b.errorMessage(ctx, req, err))
		return
	}

	followupPublic(s, i, fmt.Sprintf("✅ Successfully created GitHub issue: %s", issue.URL))
}

// handleHealth reports store and GitHub API health to the invoking
// administrator.
func (b *Bot) handleHealth(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if err := authorize(i); err != nil {
		slog.Warn("command rejected", "user_id", interactionUserID(i), "error", err)
		respondEphemeral(s, i, "❌ You do not have administrator permissions to use this command.")
		return
	}

	if err := deferEphemeral(s, i); err != nil {
		slog.Error("defer interaction", "error", err)
		return
	}

	storeHealthy := b.links.HealthCheck(ctx)
	trackerHealthy := b.tracker.CheckRepository(ctx) == nil

	status := "🟢 Healthy"
	if !storeHealthy || !trackerHealthy {
		status = "🔴 Unhealthy"
	}

	details := fmt.Sprintf(
		"**Bot Health Status:** %s\n**Database:** %s\n**GitHub API:** %s\n**Bot User:** %s\n**Repository:** %s",
		status,
		healthMark(storeHealthy),
		healthMark(trackerHealthy),
		s.State.User.Username,
		b.tracker.Repository(),
	)
	followupEphemeral(s, i, details)
}

// errorMessage maps a pipeline failure to the private message shown to the
// invoker.
func (b *Bot) errorMessage(ctx context.Context, req domain.IssueRequest, err error) string {
	var validationErr *domain.ValidationError
	var trackerErr *domain.TrackerError

	switch {
	case errors.As(err, &validationErr):
		return "Error: " + validationErr.Error()

	case errors.Is(err, domain.ErrSourceNotFound):
		return "Error: Invalid message ID or message not found."

	case errors.As(err, &trackerErr):
		return "Failed to create GitHub issue: " + trackerErr.Err.Error()

	case errors.Is(err, domain.ErrDuplicateLink):
		msg := "Error: An issue has already been created from this message."
		if id, parseErr := strconv.ParseInt(req.MessageID, 10, 64); parseErr == nil {
			if link, findErr := b.links.Find(ctx, id); findErr == nil {
				msg += " Existing issue: " + link.IssueURL
			}
		}
		return msg

	case errors.Is(err, domain.ErrStorageUnavailable):
		return "Error: The issue was created but the link could not be saved: " + err.Error()

	default:
		slog.Error("unexpected create-issue error", "error", err)
		return "An unexpected error occurred: " + err.Error()
	}
}

func healthMark(ok bool) string {
	if ok {
		return "✅ Connected"
	}
	return "❌ Error"
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("send interaction response", "error", err)
	}
}

func followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		slog.Error("send followup message", "error", err)
	}
}

func followupPublic(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		slog.Error("send followup message", "error", err)
	}
}
