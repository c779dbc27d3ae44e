package models

// Account is the public projection of a user record. It deliberately has no
// password field; see Credentials for the one shape that carries the hash.
type Account struct {
	Username     string   `json:"username"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Zipcode      string   `json:"zipcode"`
	FriendRadius int      `json:"friendRadius"`
	Hobbies      []string `json:"hobbies"`
	Interests    []string `json:"interests"`
}

// NewAccount is the registration input: the profile fields plus the plain
// text password, which is hashed before anything is stored.
type NewAccount struct {
	Account
	Password string `json:"password"`
}

// AccountSummary is the minimal projection used for existence checks.
type AccountSummary struct {
	Username string
}

// Credentials is used only by login verification and never serialised.
type Credentials struct {
	Username     string `json:"-"`
	PasswordHash string `json:"-"`
}

// AccountWithPhoto is a row of the user listing.
type AccountWithPhoto struct {
	Account
	ProfilePhoto string `json:"profilePic"`
}
