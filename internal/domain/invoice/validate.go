package invoice

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores usan los nombres JSON de los campos.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check falla rápido antes de valorizar nada. Todos los problemas se devuelven
// juntos, envueltos en domain.ErrInvalidInput.
func (b *Builder) check(d *entity.Draft) error {
	if d == nil {
		return fmt.Errorf("%w: draft nulo", domain.ErrInvalidInput)
	}

	var errs []error
	if err := b.validate.Struct(d); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				errs = append(errs, fmt.Errorf("%s: %s", fe.Namespace(), tagMessage(fe)))
			}
		} else {
			errs = append(errs, err)
		}
	}

	if d.Number != "" && strings.TrimSpace(d.Number) == "" {
		errs = append(errs, errors.New("number: en blanco"))
	}
	if d.Buyer.Name != "" && strings.TrimSpace(d.Buyer.Name) == "" {
		errs = append(errs, errors.New("buyer.name: en blanco"))
	}

	nonNegative := func(field string, v decimal.Decimal) {
		if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: no puede ser negativo", field))
		}
	}
	nonNegative("discount", d.Discount)
	nonNegative("tax_rate", d.TaxRate)

	for i, it := range d.Items {
		p := fmt.Sprintf("items[%d].", i)
		nonNegative(p+"gross_weight", it.GrossWeight)
		nonNegative(p+"stone_weight", it.StoneWeight)
		if it.MetalWeight.Valid {
			nonNegative(p+"metal_weight", it.MetalWeight.Decimal)
		}
		nonNegative(p+"rate_per_gram", it.RatePerGram)
		nonNegative(p+"making_charge_percent", it.MakingChargePercent)
		nonNegative(p+"labour_rate_per_gram", it.LabourRatePerGram)
		nonNegative(p+"stone_amount", it.StoneAmount)
		for j, s := range it.Stones {
			nonNegative(fmt.Sprintf("%sstones[%d].weight", p, j), s.Weight)
			nonNegative(fmt.Sprintf("%sstones[%d].rate", p, j), s.Rate)
		}
		switch it.MakingMode {
		case entity.MakingUnset, entity.MakingPercent, entity.MakingPerGram:
		default:
			errs = append(errs, fmt.Errorf("%smaking_mode: %q desconocido", p, it.MakingMode))
		}
	}

	if ex := d.Exchange; ex != nil {
		nonNegative("exchange.weight", ex.Weight)
		nonNegative("exchange.rate", ex.Rate)
		nonNegative("exchange.value", ex.Value)
	}
	if pay := d.Payment; pay != nil {
		nonNegative("payment.cash", pay.Cash)
		nonNegative("payment.bank", pay.Bank)
		nonNegative("payment.card", pay.Card)
		nonNegative("payment.online", pay.Online)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obligatorio"
	case "min":
		return "mínimo " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}
