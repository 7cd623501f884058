package handler

// RegisterPersonRequest is the payload for POST /persons. Fields arrive as
// raw strings and are validated by the service.
type RegisterPersonRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// UpdatePersonRequest is the payload for PUT /persons/{id}.
type UpdatePersonRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}
