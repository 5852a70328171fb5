// Package seed prepares a local document store: collections with schema
// validators, sample documents and database users.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/bootcamp/internal/logging"
)

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrValidation         = errors.New("document failed validation")
)

// ValidationLevel controls which writes are checked.
type ValidationLevel string

// ValidationAction controls what happens to a document that fails validation.
type ValidationAction string

const (
	LevelOff      ValidationLevel = "off"
	LevelModerate ValidationLevel = "moderate"
	LevelStrict   ValidationLevel = "strict"

	ActionWarn  ValidationAction = "warn"
	ActionError ValidationAction = "error"
)

func (l ValidationLevel) valid() bool {
	return l == LevelOff || l == LevelModerate || l == LevelStrict
}

func (a ValidationAction) valid() bool {
	return a == ActionWarn || a == ActionError
}

// Role grants a user a role on a database.
type Role struct {
	Role string `yaml:"role" json:"role"`
	DB   string `yaml:"db" json:"db"`
}

// Store is a document store kept in a single SQLite file.
type Store struct {
	db         *sql.DB
	log        *slog.Logger
	now        func() time.Time
	bcryptCost int
}

type Option func(*Store)

func WithLogger(log *slog.Logger) Option { return func(s *Store) { s.log = log } }

// WithBcryptCost lowers hashing cost, mostly for tests.
func WithBcryptCost(cost int) Option { return func(s *Store) { s.bcryptCost = cost } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// Open opens (or creates) the store at path. ":memory:" gives a throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{
		db:         db,
		log:        logging.Discard(),
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			db TEXT NOT NULL,
			name TEXT NOT NULL,
			validator TEXT,
			validation_level TEXT NOT NULL DEFAULT 'strict',
			validation_action TEXT NOT NULL DEFAULT 'error',
			created_at INTEGER NOT NULL,
			PRIMARY KEY (db, name)
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			db TEXT NOT NULL,
			collection TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (db, collection) REFERENCES collections(db, name) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(db, collection)`,
		`CREATE TABLE IF NOT EXISTS users (
			db TEXT NOT NULL,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			roles TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (db, name)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// collection is a loaded collection definition.
type collection struct {
	validator *Validator
	level     ValidationLevel
	action    ValidationAction
}

// CreateCollection creates an empty collection guarded by validator (may be nil).
// New collections validate strictly and reject invalid documents.
func (s *Store) CreateCollection(ctx context.Context, db, name string, validator *Validator) error {
	if _, err := validator.compile(); err != nil {
		return fmt.Errorf("create %s.%s: %w", db, name, err)
	}
	raw, err := encodeValidator(validator)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (db, name, validator, validation_level, validation_action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (db, name) DO NOTHING`,
		db, name, raw, LevelStrict, ActionError, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("create %s.%s: %w", db, name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("create %s.%s: %w", db, name, ErrCollectionExists)
	}
	s.log.Info("collection created", "db", db, "collection", name)
	return nil
}

// ModifyCollection replaces the validator and its level and action.
// Existing documents are not re-checked.
func (s *Store) ModifyCollection(ctx context.Context, db, name string, validator *Validator, level ValidationLevel, action ValidationAction) error {
	if !level.valid() {
		return fmt.Errorf("modify %s.%s: invalid validationLevel %q", db, name, level)
	}
	if !action.valid() {
		return fmt.Errorf("modify %s.%s: invalid validationAction %q", db, name, action)
	}
	if _, err := validator.compile(); err != nil {
		return fmt.Errorf("modify %s.%s: %w", db, name, err)
	}
	raw, err := encodeValidator(validator)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE collections SET validator = ?, validation_level = ?, validation_action = ?
		 WHERE db = ? AND name = ?`,
		raw, level, action, db, name)
	if err != nil {
		return fmt.Errorf("modify %s.%s: %w", db, name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("modify %s.%s: %w", db, name, ErrCollectionNotFound)
	}
	s.log.Info("collection modified", "db", db, "collection", name, "level", level, "action", action)
	return nil
}

func (s *Store) loadCollection(ctx context.Context, db, name string) (*collection, error) {
	var (
		raw    sql.NullString
		level  string
		action string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT validator, validation_level, validation_action FROM collections WHERE db = ? AND name = ?`,
		db, name).Scan(&raw, &level, &action)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	c := &collection{level: ValidationLevel(level), action: ValidationAction(action)}
	if raw.Valid && raw.String != "" {
		c.validator = &Validator{}
		if err := json.Unmarshal([]byte(raw.String), c.validator); err != nil {
			return nil, fmt.Errorf("decode validator: %w", err)
		}
	}
	return c, nil
}

// Insert stores doc in the collection after validating it. Inserts are
// checked under both moderate and strict levels. Inserting into a missing
// collection creates it without a validator.
func (s *Store) Insert(ctx context.Context, db, name string, doc map[string]any) (int64, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode document: %w", err)
	}

	c, err := s.loadCollection(ctx, db, name)
	if errors.Is(err, ErrCollectionNotFound) {
		if err := s.CreateCollection(ctx, db, name, nil); err != nil && !errors.Is(err, ErrCollectionExists) {
			return 0, err
		}
		c = &collection{level: LevelStrict, action: ActionError}
	} else if err != nil {
		return 0, fmt.Errorf("insert into %s.%s: %w", db, name, err)
	}

	if err := c.check(body); err != nil {
		if c.action == ActionError {
			return 0, fmt.Errorf("insert into %s.%s: %w: %v", db, name, ErrValidation, err)
		}
		s.log.Warn("document failed validation, stored anyway", "db", db, "collection", name, "err", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (db, collection, body, created_at) VALUES (?, ?, ?, ?)`,
		db, name, string(body), s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert into %s.%s: %w", db, name, err)
	}
	return res.LastInsertId()
}

// check validates the JSON-encoded document. Round-tripping through JSON
// gives the validator plain maps and float64 numbers.
func (c *collection) check(body []byte) error {
	if c.level == LevelOff || c.validator == nil {
		return nil
	}
	resolved, err := c.validator.compile()
	if err != nil || resolved == nil {
		return err
	}
	var instance map[string]any
	if err := json.Unmarshal(body, &instance); err != nil {
		return err
	}
	return resolved.Validate(instance)
}

// Documents returns every document in the collection in insertion order.
func (s *Store) Documents(ctx context.Context, db, name string) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE db = ? AND collection = ? ORDER BY id`, db, name)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", db, name, err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// EnsureUser creates the user unless it already exists on that database.
// It reports whether a new user was created. Passwords are stored as bcrypt
// hashes.
func (s *Store) EnsureUser(ctx context.Context, db, user, pwd string, roles []Role) (bool, error) {
	if strings.TrimSpace(user) == "" {
		return false, fmt.Errorf("ensure user: name is required")
	}
	exists, err := s.userExists(ctx, db, user)
	if err != nil {
		return false, err
	}
	if exists {
		s.log.Info("user already exists", "db", db, "user", user)
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	rawRoles, err := json.Marshal(roles)
	if err != nil {
		return false, fmt.Errorf("encode roles: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (db, name, password_hash, roles, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (db, name) DO NOTHING`,
		db, user, string(hash), string(rawRoles), s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("create user %s: %w", user, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.log.Info("user already exists", "db", db, "user", user)
		return false, nil
	}
	s.log.Info("user created", "db", db, "user", user)
	return true, nil
}

func (s *Store) userExists(ctx context.Context, db, user string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE db = ? AND name = ?`, db, user).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", user, err)
	}
	return n > 0, nil
}

// Authenticate reports whether pwd matches the stored hash for user.
func (s *Store) Authenticate(ctx context.Context, db, user, pwd string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE db = ? AND name = ?`, db, user).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", user, err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil, nil
}

// Roles returns the roles granted to user.
func (s *Store) Roles(ctx context.Context, db, user string) ([]Role, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT roles FROM users WHERE db = ? AND name = ?`, db, user).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", user, err)
	}
	var roles []Role
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

func encodeValidator(v *Validator) (any, error) {
	if v == nil || v.JSONSchema == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode validator: %w", err)
	}
	return string(b), nil
}
