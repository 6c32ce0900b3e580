package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/zone-laptop/zone-store/internal/application/dto"
)

func TestReadCatalog_ConEncabezado(t *testing.T) {
	csv := "\ufeffnombre,marca,categoria,precio,stock,imagen,descripcion,specs\n" +
		"Lenovo IdeaPad 3,Lenovo,Laptops,\"549,99\",4,https://img/1.png,Uso diario,Ryzen 5;8GB RAM\n" +
		"Mouse,Logitech,Accesorios,12.5,0\n"

	rows, err := readCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lenovo IdeaPad 3", rows[0].Name)
	assert.Equal(t, "549.99", rows[0].Price.StringFixed(2))
	assert.Equal(t, 4, rows[0].Stock)
	assert.Equal(t, []string{"Ryzen 5", "8GB RAM"}, rows[0].Specs)
	assert.Equal(t, 0, rows[1].Stock)
	assert.Empty(t, rows[1].Specs)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("Laptop,Lenovo,Laptops\n"))
	assert.ErrorContains(t, err, "línea 1")

	_, err = readCatalog(strings.NewReader("Laptop,Lenovo,Laptops,caro,1\n"))
	assert.ErrorContains(t, err, "precio")

	_, err = readCatalog(strings.NewReader("Laptop,Lenovo,Laptops,10,muchos\n"))
	assert.ErrorContains(t, err, "stock")
}

type recordingCreator struct {
	got []dto.ProductRequest
}

func (r *recordingCreator) Create(_ context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	r.got = append(r.got, in)
	return &dto.ProductResponse{Name: in.Name}, nil
}

func TestImportCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Cámara Web,Genius,Accesorios,25,3\n")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalogo.csv")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	rec := &recordingCreator{}
	n, err := importCatalog(context.Background(), rec, path, true)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, "Cámara Web", rec.got[0].Name)
}
