package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" validate:"max=300"`
	Body    string `json:"message" validate:"required,min=1,max=10000"`
}

func (r *ContactRequest) Validate() error {
	return validate.Struct(r)
}
