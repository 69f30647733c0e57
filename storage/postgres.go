package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"

	"shopapi/models"
)

//go:embed schema.sql
var schemaSQL string

// Postgres persists the shop catalog and the order ledger through
// database/sql. Mutating operations performed inside WithTx share one
// transaction carried in the context; outside WithTx they run directly
// against the pool.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ApplySchema creates missing tables. Safe to run on every start.
func (s *Postgres) ApplySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type txKey struct{}

func (s *Postgres) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT prod_id, name, image, description, price, quantity
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProdID, &p.Name, &p.Image, &p.Description, &p.Price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Postgres) GetProduct(ctx context.Context, prodID string) (models.Product, error) {
	return s.getProduct(ctx, prodID, false)
}

// GetProductForUpdate locks the product row for the rest of the enclosing
// transaction, so concurrent stock adjustments serialize per product.
func (s *Postgres) GetProductForUpdate(ctx context.Context, prodID string) (models.Product, error) {
	return s.getProduct(ctx, prodID, true)
}

func (s *Postgres) getProduct(ctx context.Context, prodID string, lock bool) (models.Product, error) {
	query := `SELECT prod_id, name, image, description, price, quantity FROM products WHERE prod_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var p models.Product
	err := s.q(ctx).QueryRowContext(ctx, query, prodID).
		Scan(&p.ProdID, &p.Name, &p.Image, &p.Description, &p.Price, &p.Quantity)
	if err == sql.ErrNoRows {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// AdjustProductQuantity shifts available stock by delta, negative to take
// stock out. No floor is applied.
func (s *Postgres) AdjustProductQuantity(ctx context.Context, prodID string, delta int) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE products SET quantity = quantity + $2 WHERE prod_id = $1
	`, prodID, delta)
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	if n == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *Postgres) GetCustomer(ctx context.Context, custID string) (models.Customer, error) {
	var c models.Customer
	err := s.q(ctx).QueryRowContext(ctx, `SELECT cust_id FROM customers WHERE cust_id = $1`, custID).
		Scan(&c.CustID)
	if err == sql.ErrNoRows {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (s *Postgres) CreateCustomer(ctx context.Context, custID string) error {
	if _, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO customers (cust_id) VALUES ($1) ON CONFLICT (cust_id) DO NOTHING
	`, custID); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *Postgres) CreateOrder(ctx context.Context, order models.Order) error {
	if _, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO orders (order_id, total) VALUES ($1, $2)
	`, order.OrderID, order.Total); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetOrderForUpdate locks the order row so total adjustments from
// concurrent requests serialize per order.
func (s *Postgres) GetOrderForUpdate(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT order_id, total FROM orders WHERE order_id = $1 FOR UPDATE
	`, orderID).Scan(&o.OrderID, &o.Total)
	if err == sql.ErrNoRows {
		return models.Order{}, models.ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *Postgres) AdjustOrderTotal(ctx context.Context, orderID string, delta decimal.Decimal) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE orders SET total = total + $2 WHERE order_id = $1
	`, orderID, delta)
	if err != nil {
		return fmt.Errorf("adjust order total: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust order total: %w", err)
	}
	if n == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

func (s *Postgres) GetOrderLine(ctx context.Context, orderID, prodID string) (models.OrderLine, error) {
	var l models.OrderLine
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT order_id, prod_id, cust_id, quantity, price
		FROM order_lines
		WHERE order_id = $1 AND prod_id = $2
	`, orderID, prodID).Scan(&l.OrderID, &l.ProdID, &l.CustID, &l.Quantity, &l.Price)
	if err == sql.ErrNoRows {
		return models.OrderLine{}, models.ErrOrderLineNotFound
	}
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("get order line: %w", err)
	}
	return l, nil
}

// ListCustomerLines returns every line for the customer in insertion order.
func (s *Postgres) ListCustomerLines(ctx context.Context, custID string) ([]models.OrderLine, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT order_id, prod_id, cust_id, quantity, price
		FROM order_lines
		WHERE cust_id = $1
		ORDER BY created_at, line_no
	`, custID)
	if err != nil {
		return nil, fmt.Errorf("list customer lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProdID, &l.CustID, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Postgres) InsertOrderLine(ctx context.Context, line models.OrderLine) error {
	if _, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO order_lines (order_id, prod_id, cust_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`, line.OrderID, line.ProdID, line.CustID, line.Quantity, line.Price); err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateOrderLine(ctx context.Context, orderID, prodID string, quantity int, price decimal.Decimal) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE order_lines SET quantity = $3, price = $4
		WHERE order_id = $1 AND prod_id = $2
	`, orderID, prodID, quantity, price)
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	if n == 0 {
		return models.ErrOrderLineNotFound
	}
	return nil
}

func (s *Postgres) DeleteOrderLine(ctx context.Context, orderID, prodID string) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		DELETE FROM order_lines WHERE order_id = $1 AND prod_id = $2
	`, orderID, prodID)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	if n == 0 {
		return models.ErrOrderLineNotFound
	}
	return nil
}

// GetClientSecretHash returns the stored bcrypt hash for a registered
// client, or "" when the client id has never been registered.
func (s *Postgres) GetClientSecretHash(ctx context.Context, clientID string) (string, error) {
	var hash string
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT secret_hash FROM clients WHERE client_id = $1
	`, clientID).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get client secret: %w", err)
	}
	return hash, nil
}
