package http

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// InvoiceHandler maneja vista previa y render de facturas (protegido).
type InvoiceHandler struct {
	render   *billing.RenderUseCase
	prepare  *billing.PrepareDraftUseCase
	defaults dto.DraftDefaults
	validate *validator.Validate
}

// NewInvoiceHandler construye el handler. prepare puede ser nil cuando no hay
// base de datos; en ese caso la ruta de pedidos responde 503.
func NewInvoiceHandler(render *billing.RenderUseCase, prepare *billing.PrepareDraftUseCase, defaults dto.DraftDefaults) *InvoiceHandler {
	return &InvoiceHandler{
		render:   render,
		prepare:  prepare,
		defaults: defaults,
		validate: validator.New(),
	}
}

// Preview godoc
// @Summary      Vista previa de factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DraftRequest  true  "borrador con comprador y piezas"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.DraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := in.ToDraft(h.defaults)
	if err != nil {
		return writeError(c, err)
	}
	inv, err := h.render.Preview(c.UserContext(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Render godoc
// @Summary      Generar factura
// @Description  PDF se devuelve como application/pdf; HTML devuelve la ruta escrita.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf,json
// @Param        format  query     string            false  "pdf | html"
// @Param        body    body      dto.DraftRequest  true   "borrador con comprador y piezas"
// @Success      200     {file}    binary
// @Success      201     {object}  dto.RenderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      429     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.RenderResponse
// @Router       /api/invoices/render [post]
func (h *InvoiceHandler) Render(c *fiber.Ctx) error {
	format, err := billing.ParseFormat(c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.DraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := in.ToDraft(h.defaults)
	if err != nil {
		return writeError(c, err)
	}
	return h.renderDraft(c, draft, format)
}

// RenderOrder godoc
// @Summary      Facturar un pedido guardado
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf,json
// @Param        id    path      string                   true   "id del pedido"
// @Param        body  body      dto.OrderInvoiceRequest  false  "memo, descuento, oro recibido, pago"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [post]
func (h *InvoiceHandler) RenderOrder(c *fiber.Ctx) error {
	if h.prepare == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NO_DATABASE", Message: "facturación por pedido requiere base de datos"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.OrderInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser pdf o html"})
	}
	format, err := billing.ParseFormat(in.Format)
	if err != nil {
		return writeError(c, err)
	}
	draft, err := h.prepare.FromOrder(c.UserContext(), id, billing.DraftOptions{
		Number:   in.Number,
		Discount: in.Discount,
		Exchange: in.Exchange,
		Payment:  in.Payment,
		Notes:    in.Notes,
		Header:   in.Header,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.renderDraft(c, draft, format)
}

func (h *InvoiceHandler) renderDraft(c *fiber.Ctx, draft *entity.Draft, format billing.Format) error {
	res, err := h.render.Render(c.UserContext(), draft, billing.RenderRequest{Format: format})
	if err != nil {
		return writeError(c, err)
	}
	out := res.Outcome
	if format == billing.FormatHTML {
		return c.Status(fiber.StatusCreated).JSON(dto.RenderResponse{
			OK:       out.OK,
			Path:     out.Path,
			Engine:   out.Engine,
			Size:     out.Size,
			Checksum: out.Checksum,
		})
	}
	data, err := os.ReadFile(out.Path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filepath.Base(out.Path)+`"`)
	c.Set("X-Render-Engine", out.Engine)
	c.Set("X-Checksum-SHA256", out.Checksum)
	c.Type("pdf")
	return c.Send(data)
}

// writeError traduce los errores de dominio a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_FORMAT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrRenderFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.RenderResponse{OK: false, Reason: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
