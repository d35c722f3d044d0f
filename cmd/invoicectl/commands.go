package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Joyeria-api/internal/app"
	"github.com/jhoicas/Joyeria-api/internal/application/billing"
	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/inr"
	"github.com/jhoicas/Joyeria-api/pkg/jwt"
)

// stackLoader arma el stack al ejecutar un comando, no al parsear flags.
type stackLoader func(ctx context.Context) (*app.Stack, error)

func newApp(out io.Writer, jwtCfg config.JWTConfig, load stackLoader) *cli.App {
	draftFlag := &cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Usage: "archivo JSON del borrador (- = stdin)", Required: true}
	formatFlag := &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "pdf | html", Value: "pdf"}
	outFlag := &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "ruta de salida (vacío = directorio configurado)"}

	return &cli.App{
		Name:      "invoicectl",
		Usage:     "factura de venta de joyería",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "emite un token de acceso para la API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "id de usuario", Required: true},
					&cli.StringFlag{Name: "role", Usage: "admin | vendedor | contador", Value: jwt.RoleSales},
				},
				Action: func(c *cli.Context) error {
					switch role := c.String("role"); role {
					case jwt.RoleAdmin, jwt.RoleSales, jwt.RoleAccountant:
					default:
						return fmt.Errorf("rol desconocido %q", role)
					}
					tok, err := jwt.Generate(jwtCfg.Secret, c.String("user"), c.String("role"), jwtCfg.Issuer, jwtCfg.Expiration)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, tok)
					return err
				},
			},
			{
				Name:  "preview",
				Usage: "calcula la factura sin generar documento",
				Flags: []cli.Flag{
					draftFlag,
					&cli.BoolFlag{Name: "json", Usage: "salida JSON"},
				},
				Action: func(c *cli.Context) error {
					return withStack(c, load, func(s *app.Stack) error {
						d, err := readDraft(c.String("draft"), s.Defaults)
						if err != nil {
							return err
						}
						inv, err := s.Render.Preview(c.Context, d)
						if err != nil {
							return err
						}
						if c.Bool("json") {
							enc := json.NewEncoder(out)
							enc.SetIndent("", "  ")
							return enc.Encode(dto.NewInvoiceResponse(inv))
						}
						return printInvoice(out, inv)
					})
				},
			},
			{
				Name:  "render",
				Usage: "genera el documento de la factura",
				Flags: []cli.Flag{draftFlag, outFlag, formatFlag},
				Action: func(c *cli.Context) error {
					return withStack(c, load, func(s *app.Stack) error {
						format, err := billing.ParseFormat(c.String("format"))
						if err != nil {
							return err
						}
						d, err := readDraft(c.String("draft"), s.Defaults)
						if err != nil {
							return err
						}
						res, err := s.Render.Render(c.Context, d, billing.RenderRequest{Format: format, Path: c.String("out")})
						if err != nil {
							return err
						}
						return printOutcome(out, res)
					})
				},
			},
			{
				Name:  "order",
				Usage: "genera la factura de un pedido guardado",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "id del pedido", Required: true},
					&cli.StringFlag{Name: "number", Usage: "número de memo (vacío = el del pedido)"},
					outFlag,
					formatFlag,
				},
				Action: func(c *cli.Context) error {
					return withStack(c, load, func(s *app.Stack) error {
						if s.Prepare == nil {
							return errors.New("order requiere base de datos (DATABASE_URL o DB_HOST)")
						}
						format, err := billing.ParseFormat(c.String("format"))
						if err != nil {
							return err
						}
						d, err := s.Prepare.FromOrder(c.Context, c.String("id"), billing.DraftOptions{Number: c.String("number")})
						if err != nil {
							return err
						}
						res, err := s.Render.Render(c.Context, d, billing.RenderRequest{Format: format, Path: c.String("out")})
						if err != nil {
							return err
						}
						return printOutcome(out, res)
					})
				},
			},
		},
	}
}

func withStack(c *cli.Context, load stackLoader, fn func(*app.Stack) error) error {
	s, err := load(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func readDraft(path string, def dto.DraftDefaults) (*entity.Draft, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("borrador: %w", err)
		}
		defer f.Close()
		r = f
	}
	var req dto.DraftRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("borrador %s: %w", path, err)
	}
	return req.ToDraft(def)
}

func printInvoice(out io.Writer, inv *entity.Invoice) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Memo\t%s\t\n", inv.MemoNumber())
	fmt.Fprintf(tw, "Cliente\t%s\t\n", inv.Buyer.Name)
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "Variante\tPureza\tPeso neto\tTarifa\tValor\t")
	for _, it := range inv.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			it.VariantNo, it.PurityLabel, it.NetWeight.StringFixed(3),
			inr.Format(it.RatePerGram, true), inr.Format(it.CostValue, true))
	}
	t := inv.Totals
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintf(tw, "Subtotal\t%s\t\n", inr.Format(t.Subtotal, true))
	if t.ExchangeValue.IsPositive() {
		fmt.Fprintf(tw, "Oro recibido\t-%s\t\n", inr.Format(t.ExchangeValue, true))
	}
	if t.Discount.IsPositive() {
		fmt.Fprintf(tw, "Descuento\t-%s\t\n", inr.Format(t.Discount, true))
	}
	fmt.Fprintf(tw, "GST %s%%\t%s\t\n", t.TaxRate.String(), inr.Format(t.TaxAmount, true))
	fmt.Fprintf(tw, "Redondeo\t%s\t\n", inr.Format(t.RoundOff, true))
	fmt.Fprintf(tw, "Neto\t%s\t\n", inr.Rupees(t.NetAmount))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Rupees %s Only\n", inr.AmountInWords(t.NetAmount))
	return err
}

func printOutcome(out io.Writer, res billing.RenderResult) error {
	o := res.Outcome
	_, err := fmt.Fprintf(out, "%s\t%s\t%d bytes\tsha256:%s\n", o.Engine, o.Path, o.Size, o.Checksum)
	return err
}
