package forms

// RegistrationForm is the self-service signup form: identity fields plus the
// student profile fields, submitted together. The staff provisioning flow
// reuses it unchanged.
type RegistrationForm struct {
	Username   string `form:"username" validate:"required,max=150"`
	FirstName  string `form:"first_name" validate:"required,max=30"`
	LastName   string `form:"last_name" validate:"required,max=30"`
	Email      string `form:"email" validate:"required,email,max=254"`
	Password1  string `form:"password1" validate:"required,min=8,max=128"`
	Password2  string `form:"password2" validate:"required,eqfield=Password1"`
	RollNumber string `form:"roll_number" validate:"required,max=20"`
	Department string `form:"department" validate:"required,max=100"`
	Year       int    `form:"year" validate:"required,gte=2000,lte=2030"`
	Phone      string `form:"phone" validate:"omitempty,max=15"`
}

// Validate returns field-level errors, empty when the form is well-formed
func (f *RegistrationForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// ProfileForm edits the caller's own profile
type ProfileForm struct {
	RollNumber string `form:"roll_number" validate:"required,max=20"`
	Department string `form:"department" validate:"required,max=100"`
	Year       int    `form:"year" validate:"required,gte=2000,lte=2030"`
	Phone      string `form:"phone" validate:"omitempty,max=15"`
	Bio        string `form:"bio"`
}

// Validate returns field-level errors, empty when the form is well-formed
func (f *ProfileForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// LoginForm is the username/password login form
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Validate returns field-level errors, empty when the form is well-formed
func (f *LoginForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// ContactForm is the public contact form
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required"`
}

// Validate returns field-level errors, empty when the form is well-formed
func (f *ContactForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}
