package sqldb_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scimbridge/endpoint-plugins/pkg/clients/sqldb"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
)

func column(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

func TestRowResource(t *testing.T) {
	tests := []struct {
		name     string
		row      sqldb.UserRow
		expected gateway.User
	}{
		{
			name: "Full row",
			row: sqldb.UserRow{
				UserID:      "jdoe",
				Enabled:     column("true"),
				Password:    column("hunter2"),
				FirstName:   column("Jane"),
				MiddleName:  column("Q"),
				LastName:    column("Doe"),
				Email:       column("j@x.com"),
				MobilePhone: column("555-0100"),
			},
			expected: gateway.User{
				ID:         "jdoe",
				UserName:   "jdoe",
				ExternalID: "jdoe",
				Active:     true,
				Name: &gateway.Name{
					GivenName:  "Jane",
					MiddleName: "Q",
					FamilyName: "Doe",
				},
				Emails: []gateway.MultiValuedAttribute{
					{Type: "other", Value: "j@x.com"},
				},
				PhoneNumbers: []gateway.MultiValuedAttribute{
					{Type: "other", Value: "555-0100"},
				},
			},
		},
		{
			name: "Bare row",
			row: sqldb.UserRow{
				UserID: "jdoe",
			},
			expected: gateway.User{
				ID:         "jdoe",
				UserName:   "jdoe",
				ExternalID: "jdoe",
				Active:     false,
			},
		},
		{
			name: "Enabled must be exactly true",
			row: sqldb.UserRow{
				UserID:  "jdoe",
				Enabled: column("TRUE"),
			},
			expected: gateway.User{
				ID:         "jdoe",
				UserName:   "jdoe",
				ExternalID: "jdoe",
				Active:     false,
			},
		},
		{
			name: "Empty name columns are omitted",
			row: sqldb.UserRow{
				UserID:    "jdoe",
				Enabled:   column("true"),
				FirstName: column(""),
			},
			expected: gateway.User{
				ID:         "jdoe",
				UserName:   "jdoe",
				ExternalID: "jdoe",
				Active:     true,
			},
		},
		{
			name: "Partial name",
			row: sqldb.UserRow{
				UserID:   "jdoe",
				LastName: column("Doe"),
			},
			expected: gateway.User{
				ID:         "jdoe",
				UserName:   "jdoe",
				ExternalID: "jdoe",
				Name:       &gateway.Name{FamilyName: "Doe"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sqldb.Resource(tt.row))
		})
	}
}
