package models

// ProfilePhoto links a stored image URL to an account.
type ProfilePhoto struct {
	Username string `json:"username"`
	URL      string `json:"profilePhoto"`
}

// PhotoUpload is a raw image received from a client.
type PhotoUpload struct {
	Body        []byte
	ContentType string
}
