package handler

// credentialsForm is the body of POST /signup and POST /login. Passwords
// carry no strength rules, so only the username is required.
type credentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password"`
}

// eventForm is the body of POST /add and POST /edit/{id}. Date and time are
// the only validated fields.
type eventForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Date        string `form:"date"        validate:"required,datetime=2006-01-02"`
	Time        string `form:"time"        validate:"required,datetime=15:04"`
	Location    string `form:"location"`
}
