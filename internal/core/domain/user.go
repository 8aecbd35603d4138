package domain

// Identity is the signed-in user as reported by the host.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName falls back to the email when no name is set.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// Profile is the company profile attached to a standard user.
type Profile struct {
	Name        string `json:"name,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Image       string `json:"image,omitempty"`
}

// UserSummary is one entry of the admin user filter.
type UserSummary struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	TicketCount int    `json:"ticketCount"`
}

// Company is one entry of the admin company filter.
type Company struct {
	Domain      string `json:"domain"`
	CompanyName string `json:"companyName"`
	TicketCount int    `json:"ticketCount"`
}

// Contract describes the support contract shown in the banner.
type Contract struct {
	ContractName  string  `json:"contractName,omitempty"`
	BaseTasks     float64 `json:"baseTasks,omitempty"`
	AdjustedTasks float64 `json:"adjustedTasks,omitempty"`
}

// Referral is a company referred by the user. Referrals are append-only.
type Referral struct {
	CompanyReferred string `json:"companyReferred"`
	EmailAddress    string `json:"emailAddress"`
	Phone           string `json:"phone,omitempty"`
	Comment         string `json:"comment,omitempty"`
	CreatedAt       string `json:"_createdDate,omitempty"`
}
