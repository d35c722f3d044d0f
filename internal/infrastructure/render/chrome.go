package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 en pulgadas, la unidad de Page.printToPDF.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// ChromeEngine imprime el HTML del trabajo con Chrome sin cabeza.
type ChromeEngine struct {
	execPath string
	timeout  time.Duration
}

// NewChromeEngine execPath vacío deja que chromedp busque el navegador.
func NewChromeEngine(execPath string, timeout time.Duration) *ChromeEngine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeEngine{execPath: execPath, timeout: timeout}
}

func (e *ChromeEngine) Name() string { return "chrome" }

func (e *ChromeEngine) Render(ctx context.Context, job *Job) ([]byte, error) {
	if strings.TrimSpace(job.HTML) == "" {
		return nil, errors.New("chrome: el trabajo no trae HTML")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if e.execPath != "" {
		opts = append(opts, chromedp.ExecPath(e.execPath))
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, job.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			out = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: %w", err)
	}
	return out, nil
}
