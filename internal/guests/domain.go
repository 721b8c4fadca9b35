package guests

import "time"

// Guest represents a registered guest (hóspede).
type Guest struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	DocumentType string     `json:"document_type"`
	DocumentID   string     `json:"document_id"`
	BirthDate    string     `json:"birth_date"`
	Address      Address    `json:"address"`
	Notes        string     `json:"notes"`
	Blacklisted  bool       `json:"blacklisted"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Address groups the optional address block of a guest.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
}

// Input is the payload sent on create/update. Optional strings are pointers
// so the backend receives null rather than "".
type Input struct {
	FullName     string  `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DocumentType *string `json:"document_type"`
	DocumentID   *string `json:"document_id"`
	BirthDate    *string `json:"birth_date"`
	Address      Address `json:"address"`
	Notes        *string `json:"notes"`
	Blacklisted  bool    `json:"blacklisted"`
}

// SearchText concatenates the fields free-text search matches against.
func (g Guest) SearchText() string {
	return g.FullName + " " + g.Email + " " + g.Phone + " " + g.DocumentID
}
