package sqldb

import (
	"database/sql"

	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
)

// userRow mirrors one row of the User table. Every column except the key is
// nullable in the schema.
type userRow struct {
	UserID      string
	Enabled     sql.NullString
	Password    sql.NullString
	FirstName   sql.NullString
	MiddleName  sql.NullString
	LastName    sql.NullString
	Email       sql.NullString
	MobilePhone sql.NullString
}

// resource maps the row to the outbound shape. UserID fans out to id,
// userName and externalId; only the exact string "true" enables the user;
// null or empty columns are omitted. The password never leaves the database.
func (r userRow) resource() gateway.User {
	user := gateway.User{
		ID:         r.UserID,
		UserName:   r.UserID,
		ExternalID: r.UserID,
		Active:     r.Enabled.Valid && r.Enabled.String == enabledTrue,
	}

	name := gateway.Name{
		GivenName:  r.FirstName.String,
		MiddleName: r.MiddleName.String,
		FamilyName: r.LastName.String,
	}
	if name != (gateway.Name{}) {
		user.Name = &name
	}

	if r.Email.Valid && r.Email.String != "" {
		user.Emails = []gateway.MultiValuedAttribute{
			{Type: gateway.AttributeTypeOther, Value: r.Email.String},
		}
	}

	if r.MobilePhone.Valid && r.MobilePhone.String != "" {
		user.PhoneNumbers = []gateway.MultiValuedAttribute{
			{Type: gateway.AttributeTypeOther, Value: r.MobilePhone.String},
		}
	}

	return user
}

// columnValue maps an optional attribute to its column value: absent or
// empty becomes SQL NULL, anything else is stored verbatim.
func columnValue(value *string) any {
	if value == nil || *value == "" {
		return nil
	}

	return *value
}

// firstValue extracts the single value the schema can hold from a
// multi-valued attribute list.
func firstValue(attrs []gateway.MultiValuedAttribute) *string {
	if len(attrs) == 0 {
		return nil
	}

	return &attrs[0].Value
}
