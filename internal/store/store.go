package store

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/store/config"
)

// Store — каталог товаров. Каталог статичный, ядро его только читает.
type Store interface {
	ProductGetAll(ctx context.Context) ([]model.Product, error)
	ProductGet(ctx context.Context, id int) (model.Product, error)
}

var ErrNoRows = errors.New("no rows")

type store struct {
	database *sql.DB
}

func NewStore(cfg config.Config) (Store, error) {
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	// Таблица каталога
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS product (" +
			" id INTEGER PRIMARY KEY," +
			" name VARCHAR (100) NOT NULL," +
			" price INTEGER NOT NULL CHECK (price > 0)," +
			" image VARCHAR (200) NOT NULL," +
			" description VARCHAR (500) NOT NULL," +
			" category VARCHAR (10) NOT NULL" +
			" );")
	if err != nil {
		return nil, err
	}

	// Начальное наполнение. Уже существующие товары не трогаем
	for _, product := range defaultCatalog {
		_, err = db.Exec(
			"INSERT INTO product (id, name, price, image, description, category)"+
				" VALUES ($1, $2, $3, $4, $5, $6)"+
				" ON CONFLICT (id) DO NOTHING",
			product.ID,
			product.Name,
			product.Price,
			product.Image,
			product.Description,
			product.Category)
		if err != nil {
			return nil, err
		}
	}

	return &store{
		database: db,
	}, nil
}

func (store *store) ProductGetAll(ctx context.Context) ([]model.Product, error) {
	rows, err := store.database.QueryContext(ctx,
		"SELECT id, name, price, image, description, category FROM product"+
			" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var product model.Product
		err = rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Image,
			&product.Description,
			&product.Category)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (store *store) ProductGet(ctx context.Context, id int) (model.Product, error) {
	row := store.database.QueryRowContext(ctx,
		"SELECT id, name, price, image, description, category FROM product"+
			" WHERE id = $1",
		id)

	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Image,
		&product.Description,
		&product.Category)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Product{}, ErrNoRows
		}
		return model.Product{}, err
	}

	return product, nil
}
