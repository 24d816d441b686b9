package schema

// UniqueFields maps unique index names to the API field they protect.
// dberr uses it to phrase 23505 violations as "<Field> already exists".
var UniqueFields = map[string]string{
	"account_email_key": "email",
}
