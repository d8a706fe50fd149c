// seed carga productos y lotes iniciales en el backend de Restocker desde un CSV.
//
// Uso: go run ./cmd/seed -file productos.csv -email demo@restocker.app -password secreto [-latin1] [-dry-run]
// Cabecera esperada: name,description,measure,qty,expiry (qty y expiry opcionales).
// Los productos que ya existen (mismo nombre) no se duplican; solo se les agrega el lote.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	appinv "github.com/jhoicas/restocker/internal/application/inventory"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/application/usecase"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/infrastructure/restapi"
	"github.com/jhoicas/restocker/pkg/config"
	"github.com/jhoicas/restocker/pkg/logger"
)

func main() {
	file := flag.String("file", "productos.csv", "ruta del CSV")
	email := flag.String("email", os.Getenv("SEED_EMAIL"), "email de la cuenta destino")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "contraseña de la cuenta destino")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo valida el CSV, no llama al backend")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")
	runID := uuid.NewString()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	rows, skipped, err := parseRows(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	for _, s := range skipped {
		log.Warn().Str("run_id", runID).Msg(s)
	}

	now := time.Now()
	var valid []row
	for _, rw := range rows {
		if _, _, err := validateRow(rw, now); err != nil {
			log.Warn().Str("run_id", runID).Int("line", rw.Line).Err(err).Msg("fila inválida, se omite")
			continue
		}
		valid = append(valid, rw)
	}
	log.Info().Str("run_id", runID).Int("filas", len(rows)).Int("validas", len(valid)).Msg("CSV leído")
	if *dryRun {
		return
	}
	if *email == "" || *password == "" {
		log.Fatal().Msg("-email y -password son obligatorios")
	}

	client := restapi.NewClient(cfg.Backend, log)
	ctx := context.Background()
	s, err := login(ctx, client, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}

	res, err := seed(ctx, client, s, valid, now)
	if err != nil {
		log.Fatal().Err(err).Str("run_id", runID).Msg("seed interrumpido")
	}
	log.Info().
		Str("run_id", runID).
		Int("productos_creados", res.created).
		Int("productos_existentes", res.existing).
		Int("lotes", res.batches).
		Int("errores", res.failed).
		Msg("seed terminado")
}

func login(ctx context.Context, client *restapi.Client, email, password string) (ports.Session, error) {
	token, err := client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return ports.Session{}, err
	}
	u, err := client.Me(ctx, token)
	if err != nil {
		return ports.Session{}, err
	}
	return ports.Session{UserID: u.ID, Token: token}, nil
}

type seedResult struct {
	created, existing, batches, failed int
}

// seed crea los productos que falten y agrega un lote por fila.
// Una fila con producto o lote inválido se descarta entera, sin llamar al backend.
// El backend no devuelve el id al crear, así que se resuelve releyendo el listado por nombre.
func seed(ctx context.Context, backend ports.InventoryBackend, s ports.Session, rows []row, now time.Time) (seedResult, error) {
	var res seedResult
	products, err := backend.ListProducts(ctx, s)
	if err != nil {
		return res, fmt.Errorf("listar productos: %w", err)
	}
	byName := indexByName(products)
	created := map[string]bool{} // ids creados en esta corrida

	for _, rw := range rows {
		p, expiry, err := validateRow(rw, now)
		if err != nil {
			res.failed++
			continue
		}
		id, ok := byName[strings.ToLower(p.Name)]
		switch {
		case ok && created[id]:
			// creado antes en esta misma corrida
		case ok:
			res.existing++
		default:
			if err := backend.AddProduct(ctx, s, p); err != nil {
				res.failed++
				continue
			}
			products, err = backend.ListProducts(ctx, s)
			if err != nil {
				return res, fmt.Errorf("releer productos: %w", err)
			}
			byName = indexByName(products)
			if id, ok = byName[strings.ToLower(p.Name)]; !ok {
				res.failed++
				continue
			}
			created[id] = true
			res.created++
		}

		if rw.Stock == nil {
			continue
		}
		if err := backend.AddStock(ctx, s, id, ports.NewStock{ExpiryDate: expiry, Qty: rw.Stock.Qty}); err != nil {
			res.failed++
			continue
		}
		res.batches++
	}
	return res, nil
}

// validateRow aplica las reglas de la API al producto y, si lo hay, al lote.
func validateRow(rw row, now time.Time) (entity.Product, string, error) {
	p, err := usecase.ValidateProduct(rw.Product)
	if err != nil {
		return p, "", err
	}
	if rw.Stock == nil {
		return p, "", nil
	}
	expiry, err := appinv.ValidateNewStock(*rw.Stock, now)
	if err != nil {
		return p, "", err
	}
	return p, expiry, nil
}

func indexByName(products []entity.Product) map[string]string {
	out := make(map[string]string, len(products))
	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := out[key]; !dup {
			out[key] = p.ID
		}
	}
	return out
}
