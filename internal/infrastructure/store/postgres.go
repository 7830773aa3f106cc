package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore implements LedgerStore and CatalogStore on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ConnectPostgres establishes a connection to PostgreSQL.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			initials TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_by UUID REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS promoters (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			phone_number TEXT,
			notes TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_by UUID REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			product_id TEXT NOT NULL,
			brand_id UUID NOT NULL REFERENCES brands(id),
			is_shared BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_by UUID REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS item_sizes (
			id UUID PRIMARY KEY,
			item_id UUID NOT NULL REFERENCES items(id),
			size TEXT NOT NULL,
			original_quantity INTEGER NOT NULL CHECK (original_quantity >= 0),
			available_quantity INTEGER NOT NULL CHECK (available_quantity >= 0),
			in_circulation INTEGER NOT NULL DEFAULT 0 CHECK (in_circulation >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS shared_items (
			id UUID PRIMARY KEY,
			item_id UUID NOT NULL REFERENCES items(id),
			brand_id UUID NOT NULL REFERENCES brands(id),
			UNIQUE (item_id, brand_id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			seq BIGSERIAL PRIMARY KEY,
			id UUID NOT NULL UNIQUE,
			transaction_type TEXT NOT NULL,
			item_id UUID NOT NULL REFERENCES items(id),
			item_size_id UUID NOT NULL REFERENCES item_sizes(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			promoter_id UUID REFERENCES promoters(id),
			employee_id UUID NOT NULL REFERENCES employees(id),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_promoter ON transactions (promoter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_item ON transactions (item_id, seq DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_item_sizes_item ON item_sizes (item_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// ApplyMovement runs the conditional counter update and the movement insert
// in one database transaction. The bound check is part of the UPDATE itself
// ("... WHERE available_quantity >= $1"), so two concurrent take-outs can
// never both pass validation against a stale read.
func (s *PostgresStore) ApplyMovement(ctx context.Context, m *Movement) (*Movement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer tx.Rollback()

	var res sql.Result
	switch m.Kind {
	case KindTakeOut:
		res, err = tx.ExecContext(ctx,
			`UPDATE item_sizes
			 SET available_quantity = available_quantity - $1,
			     in_circulation = in_circulation + $1
			 WHERE id = $2 AND item_id = $3 AND available_quantity >= $1`,
			m.Quantity, m.SizeID, m.ItemID)
	case KindReturn:
		res, err = tx.ExecContext(ctx,
			`UPDATE item_sizes
			 SET in_circulation = in_circulation - $1,
			     available_quantity = available_quantity + $1
			 WHERE id = $2 AND item_id = $3 AND in_circulation >= $1`,
			m.Quantity, m.SizeID, m.ItemID)
	case KindBurn:
		res, err = tx.ExecContext(ctx,
			`UPDATE item_sizes
			 SET in_circulation = in_circulation - $1
			 WHERE id = $2 AND item_id = $3 AND in_circulation >= $1`,
			m.Quantity, m.SizeID, m.ItemID)
	case KindRestock:
		res, err = tx.ExecContext(ctx,
			`UPDATE item_sizes
			 SET available_quantity = available_quantity + $1,
			     original_quantity = original_quantity + $1
			 WHERE id = $2 AND item_id = $3`,
			m.Quantity, m.SizeID, m.ItemID)
	default:
		return nil, fmt.Errorf("unknown movement kind %q", m.Kind)
	}
	if err != nil {
		return nil, mapPQError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, mapPQError(err)
	}
	if affected == 0 {
		// Either the size row does not exist, or the bound failed.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM item_sizes WHERE id = $1 AND item_id = $2)`,
			m.SizeID, m.ItemID,
		).Scan(&exists); err != nil {
			return nil, mapPQError(err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		if m.Kind == KindTakeOut {
			return nil, ErrInsufficientAvailable
		}
		return nil, ErrInsufficientCirculation
	}

	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions
		   (id, transaction_type, item_id, item_size_id, quantity, promoter_id, employee_id, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING seq`,
		m.ID, m.Kind, m.ItemID, m.SizeID, m.Quantity,
		nullString(m.PromoterID), m.EmployeeID, nullString(m.Note), m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return nil, mapPQError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapPQError(err)
	}
	stored := *m
	return &stored, nil
}

func (s *PostgresStore) InsertSize(ctx context.Context, size *SizeCounters) error {
	if size.ID == "" {
		size.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO item_sizes (id, item_id, size, original_quantity, available_quantity, in_circulation)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		size.ID, size.ItemID, size.Size, size.Original, size.Available, size.InCirculation)
	if err != nil {
		return fmt.Errorf("inserting size: %w", mapPQError(err))
	}
	return nil
}

func (s *PostgresStore) SizeByID(ctx context.Context, sizeID string) (*SizeCounters, error) {
	var size SizeCounters
	err := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, size, original_quantity, available_quantity, in_circulation
		 FROM item_sizes WHERE id = $1`, sizeID,
	).Scan(&size.ID, &size.ItemID, &size.Size, &size.Original, &size.Available, &size.InCirculation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPQError(err)
	}
	return &size, nil
}

func (s *PostgresStore) SizesByItem(ctx context.Context, itemID string) ([]SizeCounters, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, size, original_quantity, available_quantity, in_circulation
		 FROM item_sizes WHERE item_id = $1 ORDER BY size`, itemID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var sizes []SizeCounters
	for rows.Next() {
		var size SizeCounters
		if err := rows.Scan(&size.ID, &size.ItemID, &size.Size, &size.Original, &size.Available, &size.InCirculation); err != nil {
			return nil, mapPQError(err)
		}
		sizes = append(sizes, size)
	}
	return sizes, rows.Err()
}

const movementColumns = `seq, id, transaction_type, item_id, item_size_id, quantity, promoter_id, employee_id, notes, created_at`

func (s *PostgresStore) MovementsByPromoter(ctx context.Context, promoterID string) ([]Movement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM transactions WHERE promoter_id = $1 ORDER BY seq ASC`,
		promoterID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (s *PostgresStore) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM transactions WHERE item_id = $1 ORDER BY seq DESC LIMIT $2 OFFSET $3`,
		itemID, limit, offset)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows *sql.Rows) ([]Movement, error) {
	var movements []Movement
	for rows.Next() {
		var m Movement
		var promoterID, note sql.NullString
		if err := rows.Scan(&m.Seq, &m.ID, &m.Kind, &m.ItemID, &m.SizeID, &m.Quantity,
			&promoterID, &m.EmployeeID, &note, &m.CreatedAt); err != nil {
			return nil, mapPQError(err)
		}
		m.PromoterID = promoterID.String
		m.Note = note.String
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// Catalog side

func (s *PostgresStore) CreateItem(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, name, product_id, brand_id, is_shared, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Name, item.ProductCode, item.BrandID,
		item.IsShared, item.IsActive, item.CreatedAt, nullString(item.CreatedBy))
	if err != nil {
		return fmt.Errorf("creating item: %w", mapPQError(err))
	}
	return nil
}

const itemColumns = `id, name, product_id, brand_id, is_shared, is_active, created_at, created_by`

func (s *PostgresStore) ItemByID(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPQError(err)
	}
	return item, nil
}

func (s *PostgresStore) UpdateItem(ctx context.Context, item *Item) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = $1, product_id = $2, is_active = $3 WHERE id = $4`,
		item.Name, item.ProductCode, item.IsActive, item.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", mapPQError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ItemsByBrand returns the brand's own items plus items shared into it, the
// same union the brand inventory view shows.
func (s *PostgresStore) ItemsByBrand(ctx context.Context, brandID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE brand_id = $1
		 UNION
		 SELECT i.id, i.name, i.product_id, i.brand_id, i.is_shared, i.is_active, i.created_at, i.created_by
		 FROM items i JOIN shared_items si ON si.item_id = i.id
		 WHERE si.brand_id = $1
		 ORDER BY name`, brandID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) SetItemShared(ctx context.Context, itemID string, shared bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE items SET is_shared = $1 WHERE id = $2`, shared, itemID)
	if err != nil {
		return fmt.Errorf("setting shared flag: %w", mapPQError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertSharedLink(ctx context.Context, itemID, brandID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shared_items (id, item_id, brand_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), itemID, brandID)
	if err != nil {
		return fmt.Errorf("linking shared item: %w", mapPQError(err))
	}
	return nil
}

func (s *PostgresStore) DeleteSharedLink(ctx context.Context, itemID, brandID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shared_items WHERE item_id = $1 AND brand_id = $2`, itemID, brandID)
	if err != nil {
		return fmt.Errorf("unlinking shared item: %w", mapPQError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SharedBrands(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT brand_id FROM shared_items WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapPQError(err)
		}
		brands = append(brands, id)
	}
	return brands, rows.Err()
}

func (s *PostgresStore) CreateBrand(ctx context.Context, b *Brand) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO brands (id, name, is_active, is_pinned, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.IsActive, b.IsPinned, b.CreatedAt, nullString(b.CreatedBy))
	if err != nil {
		return fmt.Errorf("creating brand: %w", mapPQError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateBrand(ctx context.Context, b *Brand) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE brands SET name = $2, is_active = $3, is_pinned = $4 WHERE id = $1`,
		b.ID, b.Name, b.IsActive, b.IsPinned)
	if err != nil {
		return fmt.Errorf("updating brand: %w", mapPQError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapPQError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) BrandByID(ctx context.Context, id string) (*Brand, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, is_active, is_pinned, created_at, created_by FROM brands WHERE id = $1`, id)

	var b Brand
	var createdBy sql.NullString
	err := row.Scan(&b.ID, &b.Name, &b.IsActive, &b.IsPinned, &b.CreatedAt, &createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPQError(err)
	}
	b.CreatedBy = createdBy.String
	return &b, nil
}

func (s *PostgresStore) Brands(ctx context.Context) ([]Brand, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_active, is_pinned, created_at, created_by FROM brands ORDER BY name`)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		var createdBy sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive, &b.IsPinned, &b.CreatedAt, &createdBy); err != nil {
			return nil, mapPQError(err)
		}
		b.CreatedBy = createdBy.String
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (s *PostgresStore) CreatePromoter(ctx context.Context, p *Promoter) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO promoters (id, name, phone_number, notes, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, nullString(p.PhoneNumber), nullString(p.Notes),
		p.IsActive, p.CreatedAt, nullString(p.CreatedBy))
	if err != nil {
		return fmt.Errorf("creating promoter: %w", mapPQError(err))
	}
	return nil
}

func (s *PostgresStore) UpdatePromoter(ctx context.Context, p *Promoter) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE promoters SET name = $2, phone_number = $3, notes = $4, is_active = $5 WHERE id = $1`,
		p.ID, p.Name, nullString(p.PhoneNumber), nullString(p.Notes), p.IsActive)
	if err != nil {
		return fmt.Errorf("updating promoter: %w", mapPQError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapPQError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Promoters(ctx context.Context) ([]Promoter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone_number, notes, is_active, created_at, created_by
		 FROM promoters ORDER BY name`)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var promoters []Promoter
	for rows.Next() {
		p, err := scanPromoter(rows)
		if err != nil {
			return nil, mapPQError(err)
		}
		promoters = append(promoters, *p)
	}
	return promoters, rows.Err()
}

func (s *PostgresStore) PromoterByID(ctx context.Context, id string) (*Promoter, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone_number, notes, is_active, created_at, created_by
		 FROM promoters WHERE id = $1`, id)
	p, err := scanPromoter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPQError(err)
	}
	return p, nil
}

func (s *PostgresStore) CreateEmployee(ctx context.Context, e *Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, full_name, initials, password_hash, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.FullName, e.Initials, e.PasswordHash, e.IsActive, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating employee: %w", mapPQError(err))
	}
	return nil
}

func (s *PostgresStore) Employees(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, initials, password_hash, is_active, created_at
		 FROM employees ORDER BY full_name`)
	if err != nil {
		return nil, mapPQError(err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Initials, &e.PasswordHash, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, mapPQError(err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *PostgresStore) EmployeeByID(ctx context.Context, id string) (*Employee, error) {
	return s.employeeBy(ctx, `id = $1`, id)
}

func (s *PostgresStore) EmployeeByName(ctx context.Context, fullName string) (*Employee, error) {
	return s.employeeBy(ctx, `full_name = $1`, fullName)
}

func (s *PostgresStore) employeeBy(ctx context.Context, where, arg string) (*Employee, error) {
	var e Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, initials, password_hash, is_active, created_at
		 FROM employees WHERE `+where, arg,
	).Scan(&e.ID, &e.FullName, &e.Initials, &e.PasswordHash, &e.IsActive, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPQError(err)
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var createdBy sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.ProductCode, &item.BrandID,
		&item.IsShared, &item.IsActive, &item.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	item.CreatedBy = createdBy.String
	return &item, nil
}

func scanPromoter(row rowScanner) (*Promoter, error) {
	var p Promoter
	var phone, notes, createdBy sql.NullString
	err := row.Scan(&p.ID, &p.Name, &phone, &notes, &p.IsActive, &p.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	p.PhoneNumber = phone.String
	p.Notes = notes.String
	p.CreatedBy = createdBy.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// mapPQError folds driver errors into the store taxonomy. Serialization
// failures and deadlocks are retryable; everything else unexpected is a
// store-unavailable condition.
func mapPQError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ErrConflictRetryable, err)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
