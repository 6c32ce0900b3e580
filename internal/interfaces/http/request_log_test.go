package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone-laptop/zone-store/internal/application/dto"
	apphttp "github.com/zone-laptop/zone-store/internal/interfaces/http"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

// newLoggedApp arma el router con log por petición hacia buf.
func newLoggedApp(t *testing.T, s *stubOrders, buf *bytes.Buffer) *fiber.App {
	t.Helper()
	prevGlobal, prevCtx := log.Logger, zerolog.DefaultContextLogger
	t.Cleanup(func() {
		log.Logger = prevGlobal
		zerolog.DefaultContextLogger = prevCtx
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        stubAuth{},
		ProductUC:     stubProducts{},
		SubmitOrderUC: s,
		OrderUC:       s,
		LifecycleUC:   s,
		ReceiptUC:     s,
		JWTSecret:     testJWTSecret,
		Logger:        logger.New(logger.Config{Env: "production", App: "zone-store", Out: buf}),
	})
	return app
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(raw) == 0 {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger_GeneraIDYRegistraEstado(t *testing.T) {
	var buf bytes.Buffer
	app := newLoggedApp(t, &stubOrders{}, &buf)

	resp, _ := send(t, app, http.MethodGet, "/api/orders", "", nil)

	id := resp.Header.Get("X-Request-ID")
	require.NotEmpty(t, id)
	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, id, last["request_id"])
	assert.Equal(t, "GET", last["method"])
	assert.Equal(t, "/api/orders", last["path"])
	assert.EqualValues(t, http.StatusUnauthorized, last["status"])
	assert.Equal(t, "info", last["level"])
}

func TestRequestLogger_RespetaIDEntrante(t *testing.T) {
	var buf bytes.Buffer
	app := newLoggedApp(t, &stubOrders{}, &buf)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "caja-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "caja-42", resp.Header.Get("X-Request-ID"))
	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, "caja-42", lines[len(lines)-1]["request_id"])
}

func TestRequestLogger_ErrorInternoLlevaElID(t *testing.T) {
	var buf bytes.Buffer
	s := &stubOrders{submitErr: errors.New("pool cerrado")}
	app := newLoggedApp(t, s, &buf)

	resp, _ := send(t, app, http.MethodPost, "/api/orders", "", dto.SubmitOrderRequest{})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	id := resp.Header.Get("X-Request-ID")
	var internal, done map[string]interface{}
	for _, l := range logLines(t, &buf) {
		switch l["message"] {
		case "error interno":
			internal = l
		case "petición atendida":
			done = l
		}
	}
	require.NotNil(t, internal, "el error debe quedar en el log")
	assert.Equal(t, id, internal["request_id"])
	assert.Equal(t, "pool cerrado", internal["error"])
	require.NotNil(t, done)
	assert.Equal(t, "error", done["level"])
}
