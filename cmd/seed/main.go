package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/rkhatri/storefront-core/config"
)

type seedProduct struct {
	name     string
	price    string
	category string
}

var catalog = []seedProduct{
	{"Thermal Label Printer", "5499.00", "hardware"},
	{"Barcode Scanner", "2350.00", "hardware"},
	{"Shipping Labels 500pk", "449.00", "consumables"},
	{"Bubble Wrap Roll 50m", "325.00", "consumables"},
	{"Carton Box Medium 25pk", "612.50", "packaging"},
	{"Packing Tape 6pk", "189.00", "packaging"},
	{"Inventory Tags 1000pk", "275.00", "consumables"},
	{"Weighing Scale 30kg", "3150.00", "hardware"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, p := range catalog {
		var id int64
		err := db.QueryRow(`
			INSERT INTO products (name, price, category, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, category = EXCLUDED.category
			RETURNING id
		`, p.name, p.price, p.category).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
		fmt.Printf("seeded product: id=%d name=%s price=%s\n", id, p.name, p.price)
	}
	fmt.Printf("catalog seeded: %d products\n", len(catalog))
}
