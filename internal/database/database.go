package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"payment-dashboard/internal/model"
)

// ErrUserExists is returned when signing up an email that is already registered.
var ErrUserExists = errors.New("user already registered")

const uniqueViolation = "23505"

type Client interface {
	Close()
	Ping(ctx context.Context) error
	ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
	UpsertPaymentIntent(ctx context.Context, intent model.PaymentIntent) error
	CreateUser(ctx context.Context, email, password string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

type client struct {
	db    *sql.DB
	table string
}

// NewClient opens a postgres connection pool. Payment intents are read from
// table, which must follow the payment_intents migration.
func NewClient(connStr, table string) (Client, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db, table: pq.QuoteIdentifier(table)}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (c *client) intentColumns() string {
	return `id, created, amount, currency, status, customer, receipt_email, latest_charge, metadata`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaymentIntent(row rowScanner) (model.PaymentIntent, error) {
	var (
		intent       model.PaymentIntent
		status       string
		customer     sql.NullString
		receiptEmail sql.NullString
		latestCharge sql.NullString
		metadata     []byte
	)

	err := row.Scan(&intent.ID, &intent.Created, &intent.Amount, &intent.Currency, &status,
		&customer, &receiptEmail, &latestCharge, &metadata)
	if err != nil {
		return model.PaymentIntent{}, err
	}

	intent.Status = model.Status(status)
	intent.Customer = customer.String
	intent.ReceiptEmail = receiptEmail.String
	intent.LatestCharge = latestCharge.String
	intent.Metadata = model.DecodeMetadata(metadata)

	return intent, nil
}

func (c *client) ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created DESC`, c.intentColumns(), c.table)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying payment intents: %w", err)
	}
	defer rows.Close()

	var intents []model.PaymentIntent
	for rows.Next() {
		intent, err := scanPaymentIntent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment intent: %w", err)
		}
		intents = append(intents, intent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment intents: %w", err)
	}

	return intents, nil
}

func (c *client) GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, c.intentColumns(), c.table)
	intent, err := scanPaymentIntent(c.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no payment intent found with id %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("querying for payment intent by id: %w", err)
	}

	return &intent, nil
}

func (c *client) UpsertPaymentIntent(ctx context.Context, intent model.PaymentIntent) error {
	metadata, err := json.Marshal(intent.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata of %s: %w", intent.ID, err)
	}
	if intent.Metadata == nil {
		metadata = []byte("{}")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, created, amount, currency, status, customer, receipt_email, latest_charge, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			customer = EXCLUDED.customer,
			receipt_email = EXCLUDED.receipt_email,
			latest_charge = EXCLUDED.latest_charge,
			metadata = EXCLUDED.metadata
	`, c.table)

	_, err = c.db.ExecContext(ctx, query,
		intent.ID,
		intent.Created,
		intent.Amount,
		intent.Currency,
		string(intent.Status),
		nullString(intent.Customer),
		nullString(intent.ReceiptEmail),
		nullString(intent.LatestCharge),
		metadata,
	)
	if err != nil {
		return fmt.Errorf("upserting payment intent %s: %w", intent.ID, err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateUser stores a bcrypt hash of password and returns the new user.
func (c *client) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	query := `INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, email`
	var (
		user model.User
		id   int64
	)
	err = c.db.QueryRowContext(ctx, query, email, hashedPassword).Scan(&id, &user.Email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.User{}, ErrUserExists
		}
		return model.User{}, fmt.Errorf("executing user insert and returning data: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)

	return user, nil
}

// GetUserByEmail includes the password hash for credential checks.
func (c *client) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, email, password FROM users WHERE email = $1`
	var (
		user model.User
		id   int64
	)
	err := c.db.QueryRowContext(ctx, query, email).Scan(&id, &user.Email, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("no user found with email %s: %w", email, model.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("querying for user by email: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)

	return user, nil
}

func (c *client) GetUserByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT id, email FROM users WHERE id = $1`
	var (
		user  model.User
		rowID int64
	)
	err := c.db.QueryRowContext(ctx, query, id).Scan(&rowID, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("no user found with id %s: %w", id, model.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("querying for user by id: %w", err)
	}
	user.ID = strconv.FormatInt(rowID, 10)

	return user, nil
}
