// Package sqldb translates endpoint operations into SQL against the fixed
// User table. Every operation opens its own connection, executes a single
// parameterized statement, and closes the connection on all exit paths; the
// database is the only state shared between calls.
package sqldb

import (
	"context"
	"crypto/tls"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/scimbridge/endpoint-plugins/pkg/config"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/errs"
)

var (
	ErrConnect           = errors.New("failed to connect to the database")
	ErrQuery             = errors.New("failed to execute query")
	ErrBadAuthorization  = errors.New("failed to decode pass-through authorization header")
	ErrUnsupportedFilter = errors.New("unsupported filter")
	ErrNoExternalID      = errors.New("no externalId provided for user creation")
	ErrNoChanges         = errors.New("no attributes to modify")
	ErrNoGroupID         = errors.New("no externalId or displayName provided for group creation")
)

type credentials struct {
	username string
	password string
}

// OpenFunc opens a database handle for a DSN. It is the only seam between
// the client and the driver; tests substitute it to run against a mock
// connection.
type OpenFunc func(dsn string, tlsConfig *tls.Config) (*sql.DB, error)

// Client executes operations against one configured database endpoint. It
// holds only resolved, read-only settings; connections are per call.
type Client struct {
	logger   hclog.Logger
	host     string
	port     int
	database string
	sslMode  string
	creds    credentials
	tls      *tls.Config

	open OpenFunc
}

func NewClient(cfg *config.Resolved, logger hclog.Logger) *Client {
	return NewClientWithOpener(cfg, logger, openDatabase)
}

// NewClientWithOpener is NewClient with a custom database opener.
func NewClientWithOpener(cfg *config.Resolved, logger hclog.Logger, open OpenFunc) *Client {
	return &Client{
		logger:   logger,
		host:     cfg.Host,
		port:     cfg.Port,
		database: cfg.Database,
		sslMode:  cfg.SSLMode,
		creds: credentials{
			username: cfg.Username,
			password: cfg.Password,
		},
		tls:  cfg.TLS,
		open: open,
	}
}

func openDatabase(dsn string, tlsConfig *tls.Config) (*sql.DB, error) {
	if tlsConfig == nil {
		return sql.Open("pgx", dsn)
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	clone := tlsConfig.Clone()
	if clone.ServerName == "" {
		clone.ServerName = connConfig.Host
	}

	connConfig.TLSConfig = clone

	return stdlib.OpenDB(*connConfig), nil
}

// quoteDSNValue escapes a value for the key/value connection string form.
// Pass-through credentials can carry arbitrary bytes, so any value with
// spaces, quotes or backslashes is single-quoted with those escaped.
func quoteDSNValue(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}

	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)

	return "'" + escaped + "'"
}

func (c *Client) dsn(creds credentials) string {
	parts := []string{
		"host=" + quoteDSNValue(c.host),
		fmt.Sprintf("port=%d", c.port),
		"dbname=" + quoteDSNValue(c.database),
		"user=" + quoteDSNValue(creds.username),
	}

	if creds.password != "" {
		parts = append(parts, "password="+quoteDSNValue(creds.password))
	}

	if c.sslMode != "" {
		parts = append(parts, "sslmode="+c.sslMode)
	}

	return strings.Join(parts, " ")
}

// passthroughCredentials overrides the static credentials with ones decoded
// from the inbound Authorization header. Basic headers carry both username
// and password; any other scheme is treated as a password-only token, the
// static username is kept so the connection stays addressable.
func (c *Client) passthroughCredentials(header string) (credentials, error) {
	creds := c.creds

	scheme, token, found := strings.Cut(header, " ")
	if !found {
		creds.password = header
		return creds, nil
	}

	if !strings.EqualFold(scheme, "Basic") {
		creds.password = token
		return creds, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return credentials{}, errs.Wrap(ErrBadAuthorization, err)
	}

	username, password, _ := strings.Cut(string(decoded), ":")
	creds.username = username
	creds.password = password

	return creds, nil
}

// acquire opens and verifies a connection for a single operation. The caller
// must release it through the returned close function on every exit path.
func (c *Client) acquire(ctx context.Context) (*sql.DB, func(), error) {
	creds := c.creds

	if header, ok := gateway.AuthorizationFromContext(ctx); ok {
		var err error

		creds, err = c.passthroughCredentials(header)
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := c.open(c.dsn(creds), c.tls)
	if err != nil {
		return nil, nil, errs.Wrap(ErrConnect, err)
	}

	// One connection per operation, never pooled.
	db.SetMaxOpenConns(1)

	release := func() {
		err := db.Close()
		if err != nil {
			c.logger.Error("failed to close database connection", "error", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		release()
		return nil, nil, errs.Wrap(ErrConnect, err)
	}

	return db, release, nil
}

func queryError(query string, err error) error {
	return errs.Wrap(ErrQuery, fmt.Errorf("%s: %w", query, err))
}

// GetUsers returns the users matching the filter descriptor. TotalResults is
// left nil; pagination belongs to the host gateway.
func (c *Client) GetUsers(ctx context.Context, params gateway.QueryParams) (*gateway.UserList, error) {
	query, args, err := selectUsersQuery(params)
	if err != nil {
		return nil, err
	}

	db, release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(query, err)
	}
	defer rows.Close()

	users := []gateway.User{}

	for rows.Next() {
		var row userRow

		err := rows.Scan(
			&row.UserID,
			&row.Enabled,
			&row.Password,
			&row.FirstName,
			&row.MiddleName,
			&row.LastName,
			&row.Email,
			&row.MobilePhone,
		)
		if err != nil {
			return nil, queryError(query, err)
		}

		users = append(users, row.resource())
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(query, err)
	}

	return &gateway.UserList{Resources: users}, nil
}

func (c *Client) CreateUser(ctx context.Context, attrs gateway.UserAttributes) error {
	query, args, err := insertUserQuery(attrs)
	if err != nil {
		return err
	}

	return c.execute(ctx, query, args)
}

func (c *Client) ModifyUser(ctx context.Context, id string, attrs gateway.UserAttributes) error {
	query, args, err := updateUserQuery(id, attrs)
	if err != nil {
		return err
	}

	return c.execute(ctx, query, args)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	query, args := deleteUserQuery(id)
	return c.execute(ctx, query, args)
}

// GetGroups always reports an empty result set: group membership is not
// wired to the database, and the host treats an empty list as "none".
func (c *Client) GetGroups(_ context.Context, _ gateway.QueryParams) (*gateway.GroupList, error) {
	return &gateway.GroupList{Resources: []gateway.Group{}}, nil
}

func (c *Client) CreateGroup(ctx context.Context, attrs gateway.GroupAttributes) error {
	query, args, err := insertGroupQuery(attrs)
	if err != nil {
		return err
	}

	if len(attrs.Members) > 0 {
		c.logger.Warn("group members are not persisted", "members", len(attrs.Members))
	}

	return c.execute(ctx, query, args)
}

func (c *Client) execute(ctx context.Context, query string, args []any) error {
	db, release, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	_, err = db.ExecContext(ctx, query, args...)
	if err != nil {
		return queryError(query, err)
	}

	return nil
}
