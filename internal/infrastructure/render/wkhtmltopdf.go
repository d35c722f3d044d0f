package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	wkhtml "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PageMarginMM margen de página en milímetros para los motores HTML.
const PageMarginMM = 5

var setBinaryPath sync.Once

// WkhtmltopdfEngine convierte el HTML del trabajo con el binario wkhtmltopdf.
type WkhtmltopdfEngine struct {
	dpi uint
}

// NewWkhtmltopdfEngine binPath vacío usa el binario del PATH. La ruta del
// binario es global en la librería, así que solo se fija una vez.
func NewWkhtmltopdfEngine(binPath string) *WkhtmltopdfEngine {
	if binPath != "" {
		setBinaryPath.Do(func() { wkhtml.SetPath(binPath) })
	}
	return &WkhtmltopdfEngine{dpi: 300}
}

func (e *WkhtmltopdfEngine) Name() string { return "wkhtmltopdf" }

func (e *WkhtmltopdfEngine) Render(ctx context.Context, job *Job) ([]byte, error) {
	if strings.TrimSpace(job.HTML) == "" {
		return nil, errors.New("wkhtmltopdf: el trabajo no trae HTML")
	}
	gen, err := wkhtml.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}

	gen.PageSize.Set(wkhtml.PageSizeA4)
	gen.Dpi.Set(e.dpi)
	gen.MarginTop.Set(PageMarginMM)
	gen.MarginBottom.Set(PageMarginMM)
	gen.MarginLeft.Set(PageMarginMM)
	gen.MarginRight.Set(PageMarginMM)
	gen.Title.Set(job.Title)
	gen.Quiet.Set(true)

	page := wkhtml.NewPageReader(strings.NewReader(job.HTML))
	page.EnableLocalFileAccess.Set(true)
	gen.AddPage(page)

	if err := gen.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return gen.Bytes(), nil
}
