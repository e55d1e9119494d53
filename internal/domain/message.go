package domain

import "time"

// Attachment is a file attached to a source message.
type Attachment struct {
	Filename string
	URL      string
}

// SourceMessage is the Discord message a create-issue invocation references,
// reduced to the fields the issue body embeds.
type SourceMessage struct {
	ID            int64
	AuthorMention string
	AuthorName    string
	GuildName     string
	ChannelName   string
	JumpURL       string
	Content       string
	CreatedAt     time.Time
	Attachments   []Attachment
}
