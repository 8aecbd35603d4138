package domain

// Outbound actions (widget -> host).
const (
	ActionReady                Action = "ready"
	ActionRequestUpload        Action = "requestUpload"
	ActionAddNote              Action = "addNote"
	ActionUpdateStatus         Action = "updateStatus"
	ActionDeleteTicket         Action = "deleteTicket"
	ActionUpdateTicketType     Action = "updateTicketType"
	ActionUpdateProjectValue   Action = "updateProjectValue"
	ActionCreateTicket         Action = "createTicket"
	ActionAddReferral          Action = "addReferral"
	ActionSaveProfile          Action = "saveProfile"
	ActionPacman               Action = "pacman"
	ActionNotificationReceived Action = "notificationReceived"
	ActionModalOpened          Action = "modalOpened"
)

// Outbound is the closed set of messages the widget sends to the host.
type Outbound interface {
	Action() Action
	isOutbound()
}

type outbound struct{}

func (outbound) isOutbound() {}

// Ready tells the host the widget can receive traffic.
type Ready struct {
	outbound
}

// RequestUpload asks the host to open its file picker.
type RequestUpload struct {
	outbound
}

// AddNote sends a message on a ticket. Ticket carries the selected ticket
// as the host expects it.
type AddNote struct {
	outbound
	TicketID   string      `json:"ticketId"`
	Content    string      `json:"content"`
	Ticket     *Ticket     `json:"ticket,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// UpdateStatus requests a status change.
type UpdateStatus struct {
	outbound
	TicketID string       `json:"ticketId"`
	Status   TicketStatus `json:"status"`
}

// DeleteTicket requests a deletion.
type DeleteTicket struct {
	outbound
	TicketID string `json:"ticketId"`
}

// UpdateTicketType requests a type change.
type UpdateTicketType struct {
	outbound
	TicketID   string     `json:"ticketId"`
	TicketType TicketType `json:"ticketType"`
}

// UpdateProjectValue requests a project value change. The host confirms
// with projectValueUpdated.projectValue.
type UpdateProjectValue struct {
	outbound
	TicketID string  `json:"ticketId"`
	Value    float64 `json:"value"`
}

// CreateTicket requests a new ticket. The host echoes the full entity in
// ticketCreated.
type CreateTicket struct {
	outbound
	TicketType     TicketType     `json:"ticketType"`
	Category       string         `json:"category"`
	CustomCategory string         `json:"customCategory"`
	Subject        string         `json:"subject"`
	Description    string         `json:"description"`
	Priority       TicketPriority `json:"priority"`
	BusinessImpact string         `json:"businessImpact"`
}

// AddReferral submits a referral.
type AddReferral struct {
	outbound
	CompanyReferred string `json:"companyReferred"`
	EmailAddress    string `json:"emailAddress"`
	Phone           string `json:"phone"`
	Comment         string `json:"comment"`
}

// SaveProfile stores the user's profile.
type SaveProfile struct {
	outbound
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// Pacman is the easter egg signal.
type Pacman struct {
	outbound
}

// NotificationReceived reports an unread increment with the current
// aggregate count.
type NotificationReceived struct {
	outbound
	TicketID   string `json:"ticketId"`
	TotalCount int    `json:"totalCount"`
}

// ModalOpened lets the host scroll its frame when a modal opens.
type ModalOpened struct {
	outbound
	Modal Modal `json:"modal"`
}

func (*Ready) Action() Action                { return ActionReady }
func (*RequestUpload) Action() Action        { return ActionRequestUpload }
func (*AddNote) Action() Action              { return ActionAddNote }
func (*UpdateStatus) Action() Action         { return ActionUpdateStatus }
func (*DeleteTicket) Action() Action         { return ActionDeleteTicket }
func (*UpdateTicketType) Action() Action     { return ActionUpdateTicketType }
func (*UpdateProjectValue) Action() Action   { return ActionUpdateProjectValue }
func (*CreateTicket) Action() Action         { return ActionCreateTicket }
func (*AddReferral) Action() Action          { return ActionAddReferral }
func (*SaveProfile) Action() Action          { return ActionSaveProfile }
func (*Pacman) Action() Action               { return ActionPacman }
func (*NotificationReceived) Action() Action { return ActionNotificationReceived }
func (*ModalOpened) Action() Action          { return ActionModalOpened }

// Modal names a dialog the widget can open.
type Modal string

const (
	ModalNone      Modal = ""
	ModalNewTicket Modal = "newTicket"
	ModalReferral  Modal = "referral"
	ModalImage     Modal = "image"
)

// IsValid reports whether m names an openable modal.
func (m Modal) IsValid() bool {
	switch m {
	case ModalNewTicket, ModalReferral, ModalImage:
		return true
	default:
		return false
	}
}
