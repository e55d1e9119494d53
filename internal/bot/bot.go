package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
	"github.com/safetymonkey/discord-to-github-issues-bot/internal/service"
)

// Tracker is the issue-tracker surface the bot consumes. Issue creation goes
// through the service; the rest feeds the health command.
type Tracker interface {
	service.IssueTracker
	CheckRepository(ctx context.Context) error
	Repository() string
}

// Links is the link-store surface the bot consumes. Find enriches
// duplicate-link errors with the existing issue URL; HealthCheck feeds the
// health command.
type Links interface {
	service.LinkStore
	Find(ctx context.Context, sourceMessageID int64) (*domain.IssueLink, error)
	HealthCheck(ctx context.Context) bool
}

// Bot owns the Discord session and routes slash-command interactions.
type Bot struct {
	session *discordgo.Session
	issues  *service.IssueService
	links   Links
	tracker Tracker
}

// New creates the bot and wires the interaction handlers. The gateway
// connection is not opened until Start.
func New(token string, tracker Tracker, links Links) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		issues:  service.NewIssueService(newMessageSource(session), tracker, links),
		links:   links,
		tracker: tracker,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	return b, nil
}

// Start opens the gateway connection and registers the slash commands.
// Registration is an upsert keyed by command name, so restarting re-syncs the
// definitions.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			b.session.Close()
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
	}
	slog.Info("slash commands registered", "count", len(commands))

	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("bot logged in", "user", r.User.Username, "id", r.User.ID)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "create-issue":
		b.handleCreateIssue(s, i)
	case "health":
		b.handleHealth(s, i)
	}
}
