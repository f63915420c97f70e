package domain

import "time"

const (
	ContactStatusNew    = "new"
	ContactStatusClosed = "closed"
	ContactStatusSpam   = "spam"

	DefaultPreferredContact = "viber"

	ContactReceivedNote = "Повідомлення отримано. Ми відповімо найближчим часом."
)

// IsValidContactStatus reports whether s is a known message status.
func IsValidContactStatus(s string) bool {
	switch s {
	case ContactStatusNew, ContactStatusClosed, ContactStatusSpam:
		return true
	}
	return false
}

// ContactMessage is an inquiry left through the contact form.
type ContactMessage struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            *string   `json:"email"`
	Topic            *string   `json:"topic"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferred_contact"`
	Status           string    `json:"status"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContactFilter narrows the admin inbox listing.
type ContactFilter struct {
	Status     string
	UnreadOnly bool
	Limit      int
}

// ContactPatch holds the fields an admin may change. Nil fields are kept.
type ContactPatch struct {
	IsRead *bool   `json:"is_read"`
	Status *string `json:"status" validate:"omitempty,oneof=new closed spam"`
}

// Apply copies the set fields onto m.
func (p ContactPatch) Apply(m *ContactMessage) {
	if p.IsRead != nil {
		m.IsRead = *p.IsRead
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
}

// ContactReceipt acknowledges a submitted message.
type ContactReceipt struct {
	OK         bool      `json:"ok"`
	ID         int64     `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Note       string    `json:"note"`
}

// ContactInfo is the static contact card.
type ContactInfo struct {
	Viber map[string]string `json:"viber"`
	Email string            `json:"email"`
	Phone string            `json:"phone"`
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Viber: map[string]string{
			"iryna":  "https://viber.com",
			"serhii": "https://viber.com",
			"group":  "https://viber.com",
		},
		Email: "hello@lsresort.studio",
		Phone: "+38 (000) 000-00-00",
	}
}
