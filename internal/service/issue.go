package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// MessageSource fetches the message a command references from the chat
// platform. Implementations report a missing or inaccessible message as
// domain.ErrSourceNotFound.
type MessageSource interface {
	FetchMessage(ctx context.Context, guildID, channelID string, messageID int64) (*domain.SourceMessage, error)
}

// IssueTracker creates issues in the configured repository.
type IssueTracker interface {
	CreateIssue(ctx context.Context, issue domain.ComposedIssue) (*domain.CreatedIssue, error)
}

// LinkStore persists the association between a source message and the issue
// created from it.
type LinkStore interface {
	Save(ctx context.Context, sourceMessageID int64, issueURL string, issueNumber int) error
}

// IssueService runs the create-issue pipeline: validate the input, fetch the
// source message, compose the issue, create it upstream, persist the link.
// Invocations are independent; there are no retries and no state is carried
// between calls.
type IssueService struct {
	messages  MessageSource
	tracker   IssueTracker
	links     LinkStore
	validator *requestValidator
}

// NewIssueService creates a new IssueService.
func NewIssueService(messages MessageSource, tracker IssueTracker, links LinkStore) *IssueService {
	return &IssueService{
		messages:  messages,
		tracker:   tracker,
		links:     links,
		validator: newRequestValidator(),
	}
}

// CreateFromMessage converts the referenced message into a tracker issue and
// records the link. The issue creation and the link write are two independent
// side effects: when the save fails the issue already created upstream stays
// in place and the error is returned to the caller.
func (s *IssueService) CreateFromMessage(ctx context.Context, guildID, channelID string, req domain.IssueRequest) (*domain.CreatedIssue, error) {
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	messageID, err := strconv.ParseInt(req.MessageID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid message id %q", domain.ErrSourceNotFound, req.MessageID)
	}

	msg, err := s.messages.FetchMessage(ctx, guildID, channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("fetch message %d: %w", messageID, err)
	}

	issue, err := s.tracker.CreateIssue(ctx, Compose(req, *msg))
	if err != nil {
		return nil, fmt.Errorf("create issue for message %d: %w", messageID, err)
	}

	if err := s.links.Save(ctx, msg.ID, issue.URL, issue.Number); err != nil {
		return nil, err
	}

	slog.Info("issue created",
		"message_id", msg.ID,
		"issue_number", issue.Number,
		"issue_url", issue.URL,
	)
	return issue, nil
}
