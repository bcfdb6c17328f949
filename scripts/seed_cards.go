// Seeds the card catalog into postgres as a reference table for
// deck-browser UIs and analytics queries. The game server itself never
// reads this table; the catalog is compiled in.
//
// Usage:
//
//	go run scripts/seed_cards.go -dsn postgres://localhost/krutagidon
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

const cardsSchema = `
CREATE TABLE IF NOT EXISTS cards (
	name           TEXT PRIMARY KEY,
	type           TEXT NOT NULL,
	cost           INTEGER NOT NULL,
	victory_points INTEGER NOT NULL,
	is_attack      BOOLEAN NOT NULL,
	is_defense     BOOLEAN NOT NULL,
	is_permanent   BOOLEAN NOT NULL,
	definition     JSONB NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
`

func main() {
	dsn := flag.String("dsn", "", "postgres connection string")
	flag.Parse()
	if *dsn == "" {
		log.Fatal("-dsn is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("connecting to postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, cardsSchema); err != nil {
		log.Fatalf("creating cards table: %v", err)
	}

	if err := seed(ctx, pool); err != nil {
		log.Fatal(err)
	}
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	cat := catalog.New()
	types := []catalog.CardType{
		catalog.TypeSeed, catalog.TypeFamiliar, catalog.TypeLegend,
		catalog.TypeTreasure, catalog.TypeWizard, catalog.TypeCreature,
		catalog.TypeSpell, catalog.TypePlace, catalog.TypeChaos,
		catalog.TypeStrayMagic, catalog.TypeSluggishStick,
	}

	total := 0
	for _, t := range types {
		for _, def := range cat.ByType(t) {
			blob, err := json.Marshal(def)
			if err != nil {
				return fmt.Errorf("marshaling card %q: %w", def.Name, err)
			}
			_, err = pool.Exec(ctx, `
				INSERT INTO cards (name, type, cost, victory_points, is_attack, is_defense, is_permanent, definition, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (name) DO UPDATE SET
					type = EXCLUDED.type,
					cost = EXCLUDED.cost,
					victory_points = EXCLUDED.victory_points,
					is_attack = EXCLUDED.is_attack,
					is_defense = EXCLUDED.is_defense,
					is_permanent = EXCLUDED.is_permanent,
					definition = EXCLUDED.definition,
					updated_at = EXCLUDED.updated_at`,
				def.Name, string(def.Type), def.Cost, def.VictoryPoints,
				def.IsAttack, def.IsDefense, def.IsPermanent, blob, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("upserting card %q: %w", def.Name, err)
			}
			total++
		}
	}
	log.Printf("seeded %d cards", total)
	return nil
}
