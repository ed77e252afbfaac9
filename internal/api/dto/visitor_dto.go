package dto

// RegisterVisitorRequest payload for visitor registration.
type RegisterVisitorRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Gender  string `json:"gender"`

	// Walk-in fields, accepted on the security registration route.
	WhomToVisit *string `json:"whom_to_visit,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Address     *string `json:"address,omitempty"`
	Zipcode     *string `json:"zipcode,omitempty"`
	Relation    *string `json:"relation,omitempty"`
}

// UpdateVisitorContactRequest payload for contact updates.
type UpdateVisitorContactRequest struct {
	Contact    string `json:"contact"`
	NewContact string `json:"new_contact"`
}

// AccessPassRequest payload for check-in and check-out.
type AccessPassRequest struct {
	AccessPass string `json:"access_pass"`
}

// VisitorResponse is the public shape of a visitor record.
type VisitorResponse struct {
	ID           string  `json:"id"`
	AccessPass   string  `json:"access_pass"`
	Name         string  `json:"name"`
	Contact      string  `json:"contact"`
	Gender       string  `json:"gender,omitempty"`
	Building     *string `json:"building"`
	Apartment    *string `json:"apartment"`
	WhomToVisit  *string `json:"whom_to_visit"`
	EntryTime    *string `json:"entry_time"`
	CheckoutTime *string `json:"checkout_time"`
	Age          *int    `json:"age,omitempty"`
	Address      *string `json:"address,omitempty"`
	Zipcode      *string `json:"zipcode,omitempty"`
	Relation     *string `json:"relation,omitempty"`
}
