package domain

// Action is the discriminator carried by every envelope crossing the host
// boundary.
type Action string

// Inbound actions (host -> widget).
const (
	ActionSetUser               Action = "setUser"
	ActionSetTickets            Action = "setTickets"
	ActionAccessDenied          Action = "accessDenied"
	ActionError                 Action = "error"
	ActionTicketCreated         Action = "ticketCreated"
	ActionNoteAdded             Action = "noteAdded"
	ActionStatusUpdated         Action = "statusUpdated"
	ActionTicketDeleted         Action = "ticketDeleted"
	ActionProfileSaved          Action = "profileSaved"
	ActionFileUploaded          Action = "fileUploaded"
	ActionUploadCancelled       Action = "uploadCancelled"
	ActionUploadError           Action = "uploadError"
	ActionShowLiveIndicator     Action = "showLiveIndicator"
	ActionSetContractInfo       Action = "setContractInfo"
	ActionSetReferrals          Action = "setReferrals"
	ActionReferralAdded         Action = "referralAdded"
	ActionTicketTypeUpdated     Action = "ticketTypeUpdated"
	ActionProjectValueUpdated   Action = "projectValueUpdated"
	ActionRealtimeNoteAdded     Action = "realtimeNoteAdded"
	ActionRealtimeStatusUpdated Action = "realtimeStatusUpdated"
	ActionRealtimeTicketCreated Action = "realtimeTicketCreated"
	ActionRealtimeTicketDeleted Action = "realtimeTicketDeleted"
)

// Inbound is the closed set of messages the host can send. Every variant
// lives in this package; the reconciler switches over them exhaustively.
type Inbound interface {
	Action() Action
	isInbound()
}

type inbound struct{}

func (inbound) isInbound() {}

// SetUser announces who is using the widget.
type SetUser struct {
	inbound
	User       Identity `json:"user"`
	IsAdmin    bool     `json:"isAdmin"`
	Profile    *Profile `json:"profile,omitempty"`
	HasProfile bool     `json:"hasProfile"`
	Domain     string   `json:"domain,omitempty"`
}

// SetTickets is the authoritative bulk load.
type SetTickets struct {
	inbound
	Tickets   []Ticket      `json:"tickets"`
	Users     []UserSummary `json:"users"`
	Companies []Company     `json:"companies"`
}

// AccessDenied ends the session.
type AccessDenied struct {
	inbound
	Message string `json:"message"`
}

// HostError is a host-reported failure shown as a transient notice.
type HostError struct {
	inbound
	Message string `json:"message"`
}

// TicketCreated confirms this session's createTicket request.
type TicketCreated struct {
	inbound
	Ticket *Ticket `json:"ticket"`
}

// NoteAdded confirms this session's addNote request.
type NoteAdded struct {
	inbound
	TicketID ID   `json:"ticketId"`
	Note     Note `json:"note"`
}

// StatusUpdated confirms a status change.
type StatusUpdated struct {
	inbound
	TicketID ID           `json:"ticketId"`
	Status   TicketStatus `json:"status"`
}

// TicketDeleted confirms a deletion.
type TicketDeleted struct {
	inbound
	TicketID ID `json:"ticketId"`
}

// ProfileSaved confirms saveProfile.
type ProfileSaved struct {
	inbound
	Profile *Profile `json:"profile"`
}

// FileUploaded reports a finished upload that becomes the pending
// attachment.
type FileUploaded struct {
	inbound
	URL      string         `json:"url"`
	FileType AttachmentType `json:"fileType"`
	Filename string         `json:"filename"`
}

// UploadCancelled drops the pending attachment.
type UploadCancelled struct {
	inbound
}

// UploadError reports a failed upload.
type UploadError struct {
	inbound
	Message string `json:"message,omitempty"`
}

// ShowLiveIndicator switches on the realtime indicator.
type ShowLiveIndicator struct {
	inbound
	Show bool `json:"show"`
}

// SetContractInfo sets or clears the contract banner.
type SetContractInfo struct {
	inbound
	Contract *Contract `json:"contract"`
}

// SetReferrals replaces the referral list.
type SetReferrals struct {
	inbound
	Referrals []Referral `json:"referrals"`
	Count     int        `json:"count"`
}

// ReferralAdded confirms addReferral.
type ReferralAdded struct {
	inbound
	TasksAdded float64 `json:"tasksAdded"`
}

// TicketTypeUpdated confirms updateTicketType.
type TicketTypeUpdated struct {
	inbound
	TicketID   ID         `json:"ticketId"`
	TicketType TicketType `json:"ticketType"`
}

// ProjectValueUpdated confirms updateProjectValue.
type ProjectValueUpdated struct {
	inbound
	TicketID     ID      `json:"ticketId"`
	ProjectValue float64 `json:"projectValue"`
}

// RealtimeNoteAdded is a note pushed from another session.
type RealtimeNoteAdded struct {
	inbound
	TicketID ID   `json:"ticketId"`
	Note     Note `json:"note"`
}

// RealtimeStatusUpdated is a status change pushed from another session.
type RealtimeStatusUpdated struct {
	inbound
	TicketID ID           `json:"ticketId"`
	Status   TicketStatus `json:"status"`
}

// RealtimeTicketCreated is a ticket created elsewhere.
type RealtimeTicketCreated struct {
	inbound
	Ticket *Ticket `json:"ticket"`
}

// RealtimeTicketDeleted is a ticket deleted elsewhere.
type RealtimeTicketDeleted struct {
	inbound
	TicketID ID `json:"ticketId"`
}

// Ignored stands in for an envelope whose action this widget does not
// handle. It is dropped without any visible effect.
type Ignored struct {
	inbound
	Name string `json:"action"`
}

func (*SetUser) Action() Action               { return ActionSetUser }
func (*SetTickets) Action() Action            { return ActionSetTickets }
func (*AccessDenied) Action() Action          { return ActionAccessDenied }
func (*HostError) Action() Action             { return ActionError }
func (*TicketCreated) Action() Action         { return ActionTicketCreated }
func (*NoteAdded) Action() Action             { return ActionNoteAdded }
func (*StatusUpdated) Action() Action         { return ActionStatusUpdated }
func (*TicketDeleted) Action() Action         { return ActionTicketDeleted }
func (*ProfileSaved) Action() Action          { return ActionProfileSaved }
func (*FileUploaded) Action() Action          { return ActionFileUploaded }
func (*UploadCancelled) Action() Action       { return ActionUploadCancelled }
func (*UploadError) Action() Action           { return ActionUploadError }
func (*ShowLiveIndicator) Action() Action     { return ActionShowLiveIndicator }
func (*SetContractInfo) Action() Action       { return ActionSetContractInfo }
func (*SetReferrals) Action() Action          { return ActionSetReferrals }
func (*ReferralAdded) Action() Action         { return ActionReferralAdded }
func (*TicketTypeUpdated) Action() Action     { return ActionTicketTypeUpdated }
func (*ProjectValueUpdated) Action() Action   { return ActionProjectValueUpdated }
func (*RealtimeNoteAdded) Action() Action     { return ActionRealtimeNoteAdded }
func (*RealtimeStatusUpdated) Action() Action { return ActionRealtimeStatusUpdated }
func (*RealtimeTicketCreated) Action() Action { return ActionRealtimeTicketCreated }
func (*RealtimeTicketDeleted) Action() Action { return ActionRealtimeTicketDeleted }
func (i *Ignored) Action() Action             { return Action(i.Name) }

// NewInbound returns an empty variant for a known action, ready to be
// decoded into. ok is false for actions the widget does not handle.
func NewInbound(action Action) (msg Inbound, ok bool) {
	switch action {
	case ActionSetUser:
		return &SetUser{}, true
	case ActionSetTickets:
		return &SetTickets{}, true
	case ActionAccessDenied:
		return &AccessDenied{}, true
	case ActionError:
		return &HostError{}, true
	case ActionTicketCreated:
		return &TicketCreated{}, true
	case ActionNoteAdded:
		return &NoteAdded{}, true
	case ActionStatusUpdated:
		return &StatusUpdated{}, true
	case ActionTicketDeleted:
		return &TicketDeleted{}, true
	case ActionProfileSaved:
		return &ProfileSaved{}, true
	case ActionFileUploaded:
		return &FileUploaded{}, true
	case ActionUploadCancelled:
		return &UploadCancelled{}, true
	case ActionUploadError:
		return &UploadError{}, true
	case ActionShowLiveIndicator:
		return &ShowLiveIndicator{}, true
	case ActionSetContractInfo:
		return &SetContractInfo{}, true
	case ActionSetReferrals:
		return &SetReferrals{}, true
	case ActionReferralAdded:
		return &ReferralAdded{}, true
	case ActionTicketTypeUpdated:
		return &TicketTypeUpdated{}, true
	case ActionProjectValueUpdated:
		return &ProjectValueUpdated{}, true
	case ActionRealtimeNoteAdded:
		return &RealtimeNoteAdded{}, true
	case ActionRealtimeStatusUpdated:
		return &RealtimeStatusUpdated{}, true
	case ActionRealtimeTicketCreated:
		return &RealtimeTicketCreated{}, true
	case ActionRealtimeTicketDeleted:
		return &RealtimeTicketDeleted{}, true
	default:
		return nil, false
	}
}
