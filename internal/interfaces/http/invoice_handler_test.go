package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/invoice"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/render"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/template"
	apphttp "github.com/jhoicas/Joyeria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Joyeria-api/pkg/jwt"
)

type stubEngine struct {
	name string
	out  []byte
	err  error
}

func (e stubEngine) Name() string { return e.name }

func (e stubEngine) Render(context.Context, *render.Job) ([]byte, error) { return e.out, e.err }

const draftBody = `{
	"number": "MEMO/7",
	"date": "2024-03-15",
	"buyer": {"name": "Anita Sharma", "city": "Pune", "state_code": "27"},
	"items": [{
		"variant_no": "NK-22-001",
		"description": "Necklace",
		"metal": "gold",
		"purity": "22K",
		"quantity": 1,
		"gross_weight": "10",
		"making_charge_percent": "10",
		"rate_per_gram": "6000"
	}]
}`

type apiFixture struct {
	app *fiber.App
	dir string
	reg *prometheus.Registry
}

func newAPI(t *testing.T, limiter *rate.Limiter, engines ...render.Engine) apiFixture {
	t.Helper()
	dir := t.TempDir()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "joyeria")

	uc := billing.NewRenderUseCase(
		invoice.NewBuilder(entity.BankInfo{}, entity.Regulatory{}),
		pdf.NewRenderer(zerolog.Nop()),
		pdf.NewHTMLComposer(template.NewFSStore(""), template.DefaultHTML, template.DefaultStylesheet),
		render.NewSelector(zerolog.Nop(), engines, render.WithObserver(m)),
		dir,
		zerolog.Nop(),
		billing.WithMetrics(m),
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RenderUC: uc,
		Defaults: dto.DraftDefaults{
			Seller:  entity.Party{Name: "Shree Jewellers", StateCode: "27"},
			TaxRate: decimal.NewFromInt(3),
			Now:     func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) },
		},
		JWTSecret: testJWTSecret,
		Limiter:   limiter,
		Gatherer:  reg,
	})
	return apiFixture{app: app, dir: dir, reg: reg}
}

func post(t *testing.T, app *fiber.App, path, role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestInvoiceHandler_PreviewDevuelveTotales(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/invoices/preview", pkgjwt.RoleAccountant, draftBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MEMO/7", body.Number)
	assert.Equal(t, "Shree Jewellers", body.Seller)
	assert.True(t, decimal.NewFromInt(67980).Equal(body.Totals.NetAmount))
	assert.Equal(t, "Rupees Sixty Seven Thousand Nine Hundred Eighty Only", body.AmountInWords)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "22K", body.Items[0].Purity)
}

func TestInvoiceHandler_PreviewSinItems_Retorna400(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/invoices/preview", pkgjwt.RoleSales, `{"number":"X","buyer":{"name":"A"},"items":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestInvoiceHandler_FechaInvalida_Retorna400(t *testing.T) {
	api := newAPI(t, nil)
	body := strings.Replace(draftBody, "2024-03-15", "15/03/2024", 1)
	resp := post(t, api.app, "/api/invoices/preview", pkgjwt.RoleSales, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoiceHandler_SinToken_Retorna401(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/invoices/preview", "", draftBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInvoiceHandler_RenderPDF(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 memo 7")
	api := newAPI(t, nil,
		stubEngine{name: "wkhtmltopdf", err: errors.New("no instalado")},
		stubEngine{name: "maroto", out: pdfBytes},
	)
	resp := post(t, api.app, "/api/invoices/render", pkgjwt.RoleSales, draftBody)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "maroto", resp.Header.Get("X-Render-Engine"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_MEMO_7.pdf")
	got, _ := io.ReadAll(resp.Body)
	assert.Equal(t, pdfBytes, got)
}

func TestInvoiceHandler_RenderHTML(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/invoices/render?format=html", pkgjwt.RoleAdmin, draftBody)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body dto.RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.Equal(t, "html", body.Engine)
	html, err := os.ReadFile(body.Path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "67,980.00")
}

func TestInvoiceHandler_FormatoDesconocido_Retorna400(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/invoices/render?format=docx", pkgjwt.RoleAdmin, draftBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_FORMAT")
}

func TestInvoiceHandler_TodosLosMotoresFallan_Retorna502(t *testing.T) {
	api := newAPI(t, nil,
		stubEngine{name: "wkhtmltopdf", err: errors.New("sin binario")},
		stubEngine{name: "chrome", err: errors.New("sin navegador")},
	)
	resp := post(t, api.app, "/api/invoices/render", pkgjwt.RoleSales, draftBody)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body dto.RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.OK)
	assert.Contains(t, body.Reason, "sin binario")
	assert.Contains(t, body.Reason, "sin navegador")
}

func TestInvoiceHandler_ContadorNoRenderiza(t *testing.T) {
	api := newAPI(t, nil, stubEngine{name: "maroto", out: []byte("%PDF")})
	resp := post(t, api.app, "/api/invoices/render", pkgjwt.RoleAccountant, draftBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvoiceHandler_Throttle_Retorna429(t *testing.T) {
	api := newAPI(t, rate.NewLimiter(rate.Every(time.Hour), 1), stubEngine{name: "maroto", out: []byte("%PDF")})

	first := post(t, api.app, "/api/invoices/render", pkgjwt.RoleSales, draftBody)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := post(t, api.app, "/api/invoices/render", pkgjwt.RoleSales, draftBody)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "1", second.Header.Get("Retry-After"))
}

func TestInvoiceHandler_PedidoSinBaseDeDatos_Retorna503(t *testing.T) {
	api := newAPI(t, nil)
	resp := post(t, api.app, "/api/orders/ord-1/invoice", pkgjwt.RoleSales, `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_MetricsExpuestas(t *testing.T) {
	api := newAPI(t, nil, stubEngine{name: "maroto", out: []byte("%PDF")})
	resp := post(t, api.app, "/api/invoices/render", pkgjwt.RoleSales, draftBody)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer mresp.Body.Close()

	body, _ := io.ReadAll(mresp.Body)
	assert.Contains(t, string(body), `joyeria_render_invoices_total{format="pdf",status="ok"} 1`)
	assert.Contains(t, string(body), `joyeria_render_engine_attempts_total{engine="maroto",status="ok"} 1`)
}
