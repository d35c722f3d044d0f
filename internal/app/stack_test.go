package app_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/app"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/pkg/config"
)

func shopConfig() config.ShopConfig {
	return config.ShopConfig{
		Name:          "Shree Jewellers",
		City:          "Pune",
		StateCode:     "27",
		GSTIN:         "27ABCDE1234F1Z5",
		PAN:           "ABCDE1234F",
		BISLicence:    "HM/C-123",
		TaxRate:       decimal.NewFromInt(3),
		BankName:      "HDFC",
		BankAccountNo: "50100012345678",
		BankIFSC:      "HDFC0000123",
	}
}

func TestEngines_RespetaOrdenYDuplicados(t *testing.T) {
	engines, err := app.Engines(config.RenderConfig{
		Engines: []string{"maroto", " Chrome ", "wkhtmltopdf", "maroto"},
	}, "Shree")
	require.NoError(t, err)

	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{"maroto", "chrome", "wkhtmltopdf"}, names)
}

func TestEngines_NombreDesconocido(t *testing.T) {
	_, err := app.Engines(config.RenderConfig{Engines: []string{"weasyprint"}}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShopMapping(t *testing.T) {
	shop := shopConfig()

	seller := app.Seller(shop)
	assert.Equal(t, "Shree Jewellers", seller.Name)
	assert.Equal(t, "27ABCDE1234F1Z5", seller.GSTIN)

	bank := app.Bank(shop)
	assert.False(t, bank.IsZero())
	assert.Equal(t, "HDFC0000123", bank.IFSC)

	reg := app.Regulatory(shop)
	assert.Equal(t, "HM/C-123", reg.BISLicence)
	assert.Equal(t, "27", reg.StateCode)
}

func TestBuild_SinBaseDeDatosNiNATS(t *testing.T) {
	cfg := &config.Config{
		Shop:    shopConfig(),
		Render:  config.RenderConfig{Engines: []string{"maroto"}, TemplateHTML: "invoice.html", TemplateCSS: "invoice.css", OutputDir: t.TempDir()},
		Metrics: config.MetricsConfig{Enabled: true, Namespace: "joyeria"},
	}
	s, err := app.Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.Render)
	assert.Nil(t, s.Prepare)
	assert.NotNil(t, s.Registry)
	assert.Equal(t, []string{"maroto"}, s.Engines)
	assert.Equal(t, "Shree Jewellers", s.Defaults.Seller.Name)
	assert.True(t, decimal.NewFromInt(3).Equal(s.Defaults.TaxRate))
}
