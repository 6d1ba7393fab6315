package sqldb

import (
	"fmt"
	"strings"

	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/errs"
)

// The schema is fixed: User(UserID PK, Enabled, Password, FirstName,
// MiddleName, LastName, Email, MobilePhone), all varchar. Identifiers are
// quoted because the table and column names are mixed case.
const userColumns = `"UserID", "Enabled", "Password", "FirstName", "MiddleName", "LastName", "Email", "MobilePhone"`

const (
	selectUsersStmt = `SELECT ` + userColumns + ` FROM "User"`
	selectUserStmt  = selectUsersStmt + ` WHERE "UserID" = $1`
	insertUserStmt  = `INSERT INTO "User" (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	deleteUserStmt  = `DELETE FROM "User" WHERE "UserID" = $1`
	insertGroupStmt = `INSERT INTO "Group" ("GroupID", "DisplayName") VALUES ($1, $2)`
)

const (
	enabledTrue  = "true"
	enabledFalse = "false"
)

// idAttributes are the filterable attributes; all three alias the UserID
// column.
var idAttributes = map[string]struct{}{
	"id":         {},
	"userName":   {},
	"externalId": {},
}

// selectUsersQuery supports exactly two filter shapes: no filter, and an
// equality comparison on an id attribute. Everything else is rejected
// before any connection is opened.
func selectUsersQuery(params gateway.QueryParams) (string, []any, error) {
	if params.Empty() {
		return selectUsersStmt, nil, nil
	}

	if params.RawFilter != "" {
		return "", nil, errs.Wrapf(ErrUnsupportedFilter, params.RawFilter)
	}

	if params.Operator != "" && params.Operator != gateway.FilterOperatorEqual {
		return "", nil, errs.Wrapf(ErrUnsupportedFilter, "operator "+string(params.Operator))
	}

	if _, ok := idAttributes[params.Attribute]; !ok {
		return "", nil, errs.Wrapf(ErrUnsupportedFilter, "attribute "+params.Attribute)
	}

	return selectUserStmt, []any{params.Value}, nil
}

func insertUserQuery(attrs gateway.UserAttributes) (string, []any, error) {
	if attrs.ExternalID == nil || *attrs.ExternalID == "" {
		return "", nil, ErrNoExternalID
	}

	enabled := enabledFalse
	if attrs.Active != nil && *attrs.Active {
		enabled = enabledTrue
	}

	name := attrs.Name
	if name == nil {
		name = &gateway.NameAttributes{}
	}

	args := []any{
		*attrs.ExternalID,
		enabled,
		columnValue(attrs.Password),
		columnValue(name.GivenName),
		columnValue(name.MiddleName),
		columnValue(name.FamilyName),
		columnValue(firstValue(attrs.Emails)),
		columnValue(firstValue(attrs.PhoneNumbers)),
	}

	return insertUserStmt, args, nil
}

// updateUserQuery builds one SET assignment per supplied attribute, in
// column order so the statement text is deterministic. The row is matched
// by exact UserID equality; wildcard characters in ids are literal.
func updateUserQuery(id string, attrs gateway.UserAttributes) (string, []any, error) {
	var (
		assignments []string
		args        []any
	)

	assign := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf(`%s = $%d`, column, len(args)))
	}

	if attrs.Active != nil {
		enabled := enabledFalse
		if *attrs.Active {
			enabled = enabledTrue
		}

		assign(`"Enabled"`, enabled)
	}

	if attrs.Password != nil {
		assign(`"Password"`, columnValue(attrs.Password))
	}

	if attrs.Name != nil {
		if attrs.Name.GivenName != nil {
			assign(`"FirstName"`, columnValue(attrs.Name.GivenName))
		}

		if attrs.Name.MiddleName != nil {
			assign(`"MiddleName"`, columnValue(attrs.Name.MiddleName))
		}

		if attrs.Name.FamilyName != nil {
			assign(`"LastName"`, columnValue(attrs.Name.FamilyName))
		}
	}

	if attrs.Emails != nil {
		assign(`"Email"`, columnValue(firstValue(attrs.Emails)))
	}

	if attrs.PhoneNumbers != nil {
		assign(`"MobilePhone"`, columnValue(firstValue(attrs.PhoneNumbers)))
	}

	if len(assignments) == 0 {
		return "", nil, ErrNoChanges
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE "User" SET %s WHERE "UserID" = $%d`,
		strings.Join(assignments, ", "), len(args))

	return query, args, nil
}

func deleteUserQuery(id string) (string, []any) {
	return deleteUserStmt, []any{id}
}

// insertGroupQuery stores the group id and display name only; membership is
// not persisted.
func insertGroupQuery(attrs gateway.GroupAttributes) (string, []any, error) {
	groupID := ""
	if attrs.ExternalID != nil {
		groupID = *attrs.ExternalID
	}

	displayName := ""
	if attrs.DisplayName != nil {
		displayName = *attrs.DisplayName
	}

	if groupID == "" {
		groupID = displayName
	}

	if groupID == "" {
		return "", nil, ErrNoGroupID
	}

	return insertGroupStmt, []any{groupID, columnValue(&displayName)}, nil
}
