package domain

// SupportAuthor is the author value the host uses for staff replies.
const SupportAuthor = "Support Team"

// AttachmentType is the media class of an uploaded file.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentVideo    AttachmentType = "video"
	AttachmentAudio    AttachmentType = "audio"
	AttachmentDocument AttachmentType = "document"
)

// Attachment points at a file already stored by the host.
type Attachment struct {
	URL      string         `json:"url"`
	Type     AttachmentType `json:"type"`
	Filename string         `json:"filename"`
}

// Note is a single message in a ticket conversation. Notes are immutable
// once created.
type Note struct {
	ID         ID          `json:"id"`
	Author     string      `json:"author"`
	Content    string      `json:"content,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Date       string      `json:"date,omitempty"`
}

// SentBy reports whether the note should be drawn as outgoing for a
// viewer with the given role. staffAuthor is the sentinel author of
// support replies: staff notes are outgoing for admins, all other notes
// are outgoing for standard users.
func (n *Note) SentBy(isAdmin bool, staffAuthor string) bool {
	return (n.Author == staffAuthor) == isAdmin
}
