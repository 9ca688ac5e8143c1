package handler

// loginForm is the POST body of the login page.
type loginForm struct {
	Email    string `form:"account_email" validate:"required,email"`
	Password string `form:"account_password" validate:"required"`
}

// registerForm is the POST body of the registration page.
type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required,min=2"`
	Email     string `form:"account_email" validate:"required,email"`
	Password  string `form:"account_password" validate:"required,strongpassword"`
}

// updateAccountForm is the POST body of the profile section of the account
// update page.
type updateAccountForm struct {
	AccountID string `form:"account_id" validate:"required"`
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required,min=2"`
	Email     string `form:"account_email" validate:"required,email"`
}

// updatePasswordForm is the POST body of the password section of the account
// update page.
type updatePasswordForm struct {
	AccountID string `form:"account_id" validate:"required"`
	Password  string `form:"account_password" validate:"required,strongpassword"`
}
