// Package gateway mirrors the contract the provisioning gateway host uses to
// drive endpoint plugins: the resource shapes exchanged with the host, the
// filter descriptor it passes to list operations, and the go-plugin wiring
// that lets the host load an endpoint as a subprocess.
package gateway

// AttributeTypeOther is the SCIM sub-attribute type used for the single
// email/phone slot the fixed schema can hold.
const AttributeTypeOther = "other"

type MultiValuedAttribute struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

type Name struct {
	GivenName  string `json:"givenName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

// User is the outbound resource shape. ID, UserName and ExternalID always
// carry the same value, the UserID column.
type User struct {
	ID           string                 `json:"id"`
	UserName     string                 `json:"userName"`
	ExternalID   string                 `json:"externalId"`
	Active       bool                   `json:"active"`
	Name         *Name                  `json:"name,omitempty"`
	Emails       []MultiValuedAttribute `json:"emails,omitempty"`
	PhoneNumbers []MultiValuedAttribute `json:"phoneNumbers,omitempty"`
}

type Group struct {
	ID          string                 `json:"id"`
	DisplayName string                 `json:"displayName,omitempty"`
	Members     []MultiValuedAttribute `json:"members,omitempty"`
}

// UserList and GroupList leave TotalResults nil: pagination is owned by the
// host gateway, not the endpoint.
//
//nolint:tagliatelle
type UserList struct {
	Resources    []User `json:"Resources"`
	TotalResults *int   `json:"totalResults"`
}

//nolint:tagliatelle
type GroupList struct {
	Resources    []Group `json:"Resources"`
	TotalResults *int    `json:"totalResults"`
}

// NameAttributes uses pointer fields so a patch can distinguish an absent
// name part from one explicitly set to the empty string (meaning "clear").
type NameAttributes struct {
	GivenName  *string `json:"givenName,omitempty"`
	MiddleName *string `json:"middleName,omitempty"`
	FamilyName *string `json:"familyName,omitempty"`
}

// UserAttributes is the inbound shape for create and modify operations.
// A nil field was not supplied by the caller; a non-nil empty value clears
// the corresponding column.
type UserAttributes struct {
	ExternalID   *string                `json:"externalId,omitempty"`
	Active       *bool                  `json:"active,omitempty"`
	Password     *string                `json:"password,omitempty"`
	Name         *NameAttributes        `json:"name,omitempty"`
	Emails       []MultiValuedAttribute `json:"emails,omitempty"`
	PhoneNumbers []MultiValuedAttribute `json:"phoneNumbers,omitempty"`
}

type GroupAttributes struct {
	ExternalID  *string                `json:"externalId,omitempty"`
	DisplayName *string                `json:"displayName,omitempty"`
	Members     []MultiValuedAttribute `json:"members,omitempty"`
}

type FilterOperator string

const (
	FilterOperatorEqual      FilterOperator = "eq"
	FilterOperatorNotEqual   FilterOperator = "ne"
	FilterOperatorContains   FilterOperator = "co"
	FilterOperatorStartsWith FilterOperator = "sw"
	FilterOperatorEndsWith   FilterOperator = "ew"
)

// QueryParams describes the subset of resources the host wants from a list
// operation. The host has already parsed the SCIM filter; RawFilter is only
// populated for filter shapes it could not reduce to a single comparison.
type QueryParams struct {
	Attribute  string
	Operator   FilterOperator
	Value      string
	RawFilter  string
	StartIndex *int
	Count      *int
}

// Empty reports whether the descriptor asks for all resources.
func (p QueryParams) Empty() bool {
	return p.Attribute == "" && p.Value == "" && p.RawFilter == ""
}
