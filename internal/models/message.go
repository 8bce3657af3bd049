package models

import (
	"encoding/json"
	"time"
)

// MessageStatus tracks handling of a contact-form message
type MessageStatus string

const (
	MessageStatusNew        MessageStatus = "new"
	MessageStatusInProgress MessageStatus = "in-progress"
	MessageStatusResolved   MessageStatus = "resolved"
)

// ValidMessageStatuses defines allowed message statuses
var ValidMessageStatuses = map[MessageStatus]bool{
	MessageStatusNew:        true,
	MessageStatusInProgress: true,
	MessageStatusResolved:   true,
}

// SubmittedAtLayout is the display format of a message submission time
const SubmittedAtLayout = "2006-01-02 15:04"

// FormatSubmittedAt renders t in the server's local time zone
func FormatSubmittedAt(t time.Time) string {
	return t.Local().Format(SubmittedAtLayout)
}

// Message is a contact-form submission
type Message struct {
	ID            string        `json:"id"`
	Company       string        `json:"company"`
	Name          string        `json:"name"`
	ContactNumber string        `json:"contactNumber"`
	Email         string        `json:"email"`
	Subject       string        `json:"subject"`
	Message       string        `json:"message"`
	Fabric        string        `json:"fabric"`
	Sizes         string        `json:"sizes"`
	Quantity      string        `json:"quantity"`
	Deadline      string        `json:"deadline"`
	Address       string        `json:"address"`
	Budget        string        `json:"budget"`
	FileName      string        `json:"fileName"`
	FileURL       string        `json:"fileUrl"`
	Status        MessageStatus `json:"status"`
	SubmittedAt   time.Time     `json:"submittedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// FormattedDate is derived from SubmittedAt on every call and never stored
func (m *Message) FormattedDate() string {
	return FormatSubmittedAt(m.SubmittedAt)
}

// MarshalJSON adds the derived formattedDate field
func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	return json.Marshal(struct {
		plain
		FormattedDate string `json:"formattedDate"`
	}{
		plain:         plain(m),
		FormattedDate: m.FormattedDate(),
	})
}

// DisplayName falls back to the company, then to a placeholder
func (m *Message) DisplayName() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.Company != "":
		return m.Company
	default:
		return "Unknown"
	}
}

// View reshapes the message for listings; submittedAt carries the formatted date
func (m *Message) View() MessageView {
	return MessageView{
		ID:            m.ID,
		Name:          m.DisplayName(),
		Email:         m.Email,
		Subject:       m.Subject,
		Message:       m.Message,
		Status:        m.Status,
		SubmittedAt:   m.FormattedDate(),
		Company:       m.Company,
		ContactNumber: m.ContactNumber,
		Fabric:        m.Fabric,
		Sizes:         m.Sizes,
		Quantity:      m.Quantity,
		Deadline:      m.Deadline,
		Address:       m.Address,
		Budget:        m.Budget,
		FileName:      m.FileName,
		FileURL:       m.FileURL,
	}
}

// MessageView is the external representation returned by message listings
type MessageView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Subject       string        `json:"subject"`
	Message       string        `json:"message"`
	Status        MessageStatus `json:"status"`
	SubmittedAt   string        `json:"submittedAt"`
	Company       string        `json:"company"`
	ContactNumber string        `json:"contactNumber"`
	Fabric        string        `json:"fabric"`
	Sizes         string        `json:"sizes"`
	Quantity      string        `json:"quantity"`
	Deadline      string        `json:"deadline"`
	Address       string        `json:"address"`
	Budget        string        `json:"budget"`
	FileName      string        `json:"fileName"`
	FileURL       string        `json:"fileUrl"`
}

// MessageInput is the contact-form payload, accepted as JSON or form fields
type MessageInput struct {
	Company       string `json:"company" form:"company"`
	Name          string `json:"name" form:"name"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	Email         string `json:"email" form:"email"`
	Subject       string `json:"subject" form:"subject"`
	Message       string `json:"message" form:"message"`
	Fabric        string `json:"fabric" form:"fabric"`
	Sizes         string `json:"sizes" form:"sizes"`
	Quantity      string `json:"quantity" form:"quantity"`
	Deadline      string `json:"deadline" form:"deadline"`
	Address       string `json:"address" form:"address"`
	Budget        string `json:"budget" form:"budget"`
}

// StatusUpdate is the body of a message status change
type StatusUpdate struct {
	Status MessageStatus `json:"status"`
}
