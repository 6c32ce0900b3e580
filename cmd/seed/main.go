// seed crea el esquema, importa el catálogo desde CSV y opcionalmente da de alta un usuario de caja o admin.
//
// Uso:
//
//	go run ./cmd/seed -catalog productos.csv [-latin1]
//	go run ./cmd/seed -staff-email caja@zone.com -staff-role cajero   (password en SEED_STAFF_PASSWORD)
//
// Columnas del CSV: nombre,marca,categoria,precio,stock,imagen_url,descripcion[,especificaciones]
// Las especificaciones van separadas por ";".
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/zone-laptop/zone-store/internal/application/auth"
	"github.com/zone-laptop/zone-store/internal/application/catalog"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/infrastructure/postgres"
	"github.com/zone-laptop/zone-store/pkg/config"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV del catálogo a importar")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
	staffEmail := flag.String("staff-email", "", "email del usuario de caja/admin a crear")
	staffName := flag.String("staff-name", "Caja", "nombre del usuario de caja/admin")
	staffRole := flag.String("staff-role", "cajero", "cajero | admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name + "-seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("esquema listo")

	if *catalogPath != "" {
		productUC := catalog.NewProductUseCase(postgres.NewProductRepository(pool), cfg.DB.OpTimeout)
		n, err := importCatalog(ctx, productUC, *catalogPath, *latin1)
		if err != nil {
			log.Fatal().Err(err).Int("imported", n).Msg("importar catálogo")
		}
		log.Info().Int("imported", n).Str("file", *catalogPath).Msg("catálogo importado")
	}

	if *staffEmail != "" {
		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		})
		user, err := authUC.CreateStaff(ctx, dto.CreateStaffRequest{
			FullName: *staffName,
			Email:    *staffEmail,
			Password: os.Getenv("SEED_STAFF_PASSWORD"),
			Role:     *staffRole,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Str("email", *staffEmail).Msg("el usuario ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear usuario de caja")
		default:
			log.Info().Str("id", user.ID).Str("role", user.Role).Msg("usuario creado")
		}
	}
}

type productCreator interface {
	Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
}

func importCatalog(ctx context.Context, uc productCreator, path string, latin1 bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readCatalog(r)
	if err != nil {
		return 0, err
	}
	for i, in := range rows {
		if _, err := uc.Create(ctx, in); err != nil {
			return i, fmt.Errorf("producto %q: %w", in.Name, err)
		}
	}
	return len(rows), nil
}

// readCatalog interpreta el CSV; la primera fila se ignora si es el encabezado.
func readCatalog(r io.Reader) ([]dto.ProductRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.ProductRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimPrefix(rec[0], "\ufeff"), "nombre") {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 5 columnas, hay %d", line, len(rec))
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, rec[3])
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock %q inválido", line, rec[4])
		}
		in := dto.ProductRequest{
			Name:     strings.TrimSpace(rec[0]),
			Brand:    strings.TrimSpace(rec[1]),
			Category: strings.TrimSpace(rec[2]),
			Price:    price,
			Stock:    stock,
		}
		if len(rec) > 5 {
			in.ImageURL = strings.TrimSpace(rec[5])
		}
		if len(rec) > 6 {
			in.Description = strings.TrimSpace(rec[6])
		}
		if len(rec) > 7 && strings.TrimSpace(rec[7]) != "" {
			in.Specs = strings.Split(rec[7], ";")
		}
		out = append(out, in)
	}
	return out, nil
}
