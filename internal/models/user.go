package models

// User is a registered account as stored in the users collection.
// The password is whatever the credential stage produced and never leaves the service as JSON.
type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Name     string `bson:"name,omitempty" json:"name"`
	Email    string `bson:"email,omitempty" json:"email"`
	Password string `bson:"password,omitempty" json:"-"`
}

// UserRequiredFields are the fields a users document must carry.
var UserRequiredFields = []string{"name", "email", "password"}

// UsersCollection is the collection holding User documents.
const UsersCollection = "users"
