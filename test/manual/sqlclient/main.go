//nolint:forbidigo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/magodo/slog2hclog"

	"github.com/scimbridge/endpoint-plugins/pkg/clients/sqldb"
	"github.com/scimbridge/endpoint-plugins/pkg/config"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/ptr"
)

const usage = `Script to test SQL endpoint calls against a live database.
Usage: sqlclient [options]
Options:
	--action	Action to perform (ListUsers, CreateUser, DeleteUser) (Required)
	--host		Database host (Required)
	--port		Database port
	--database	Database name (Required)
	--username	Database username (Required)
	--password	Database password
	--sslMode	Postgres sslmode parameter (e.g. disable, require)
	--caFile	Path to a CA certificate for server verification
	--id		UserID to filter on (ListUsers) or to create/delete
	--email		Email attribute for CreateUser
`

func getLogger() hclog.Logger {
	logLevelPlugin := new(slog.LevelVar)
	logLevelPlugin.Set(slog.LevelDebug)

	return slog2hclog.New(slog.Default(), logLevelPlugin)
}

func main() {
	log.SetOutput(os.Stdout)
	slog.SetLogLoggerLevel(slog.LevelDebug)

	var (
		action, host, database, username, password, sslMode, caFile, id, email string
		port                                                                   int
	)

	flag.StringVar(&action, "action", "", "Action to perform (ListUsers, CreateUser, DeleteUser)")
	flag.StringVar(&host, "host", "", "Database host")
	flag.IntVar(&port, "port", config.DefaultPort, "Database port")
	flag.StringVar(&database, "database", "", "Database name")
	flag.StringVar(&username, "username", "", "Database username")
	flag.StringVar(&password, "password", "", "Database password")
	flag.StringVar(&sslMode, "sslMode", "", "Postgres sslmode parameter")
	flag.StringVar(&caFile, "caFile", "", "Path to a CA certificate for server verification")
	flag.StringVar(&id, "id", "", "UserID to filter on or to create/delete")
	flag.StringVar(&email, "email", "", "Email attribute for CreateUser")

	flag.Parse()

	if action == "" || host == "" || database == "" || username == "" {
		fmt.Print(usage)
		os.Exit(1)
	}

	resolved := &config.Resolved{
		Host:     host,
		Port:     port,
		Database: database,
		SSLMode:  sslMode,
		Username: username,
		Password: password,
	}

	if caFile != "" {
		tlsConfig, err := config.ServerTLS(caFile)
		if err != nil {
			fmt.Println("Error loading CA certificate:", err.Error())
			os.Exit(1)
		}

		resolved.TLS = tlsConfig
	}

	client := sqldb.NewClient(resolved, getLogger())
	ctx := context.Background()

	switch action {
	case "ListUsers":
		listUsers(ctx, client, id)
	case "CreateUser":
		createUser(ctx, client, id, email)
	case "DeleteUser":
		deleteUser(ctx, client, id)
	default:
		fmt.Println("Invalid action. Supported actions are: ListUsers, CreateUser, DeleteUser")
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, client *sqldb.Client, id string) {
	params := gateway.QueryParams{}
	if id != "" {
		params = gateway.QueryParams{
			Attribute: "id",
			Operator:  gateway.FilterOperatorEqual,
			Value:     id,
		}
	}

	users, err := client.GetUsers(ctx, params)
	if err != nil {
		fmt.Println("Error listing users:", err.Error())
		os.Exit(1)
	}

	fmt.Println("Found Users:")

	for _, user := range users.Resources {
		fmt.Println(user.UserName)
	}
}

func createUser(ctx context.Context, client *sqldb.Client, id, email string) {
	if id == "" {
		fmt.Println("ID is required for CreateUser action")
		os.Exit(1)
	}

	attrs := gateway.UserAttributes{
		ExternalID: ptr.PointTo(id),
		Active:     ptr.PointTo(true),
	}

	if email != "" {
		attrs.Emails = []gateway.MultiValuedAttribute{
			{Type: gateway.AttributeTypeOther, Value: email},
		}
	}

	err := client.CreateUser(ctx, attrs)
	if err != nil {
		fmt.Println("Error creating user:", err.Error())
		os.Exit(1)
	}

	fmt.Println("Created User:", id)
}

func deleteUser(ctx context.Context, client *sqldb.Client, id string) {
	if id == "" {
		fmt.Println("ID is required for DeleteUser action")
		os.Exit(1)
	}

	err := client.DeleteUser(ctx, id)
	if err != nil {
		fmt.Println("Error deleting user:", err.Error())
		os.Exit(1)
	}

	fmt.Println("Deleted User:", id)
}
