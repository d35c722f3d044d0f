package pricing

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// Purezas por defecto cuando el string no se reconoce.
const (
	DefaultGoldKarat      = 22
	DefaultSilverFineness = 999
)

// Purity pureza normalizada. Fineness en partes por mil.
type Purity struct {
	Metal    string
	Karat    int // solo oro
	Fineness int
}

// Label texto para el documento: "22K" en oro, "925" en plata.
func (p Purity) Label() string {
	if p.Metal == entity.MetalGold {
		return strconv.Itoa(p.Karat) + "K"
	}
	return strconv.Itoa(p.Fineness)
}

// StandardKarat indica si la finura es la canónica de sus quilates (916 para
// 22K). 995 es 24K pero no se valoriza como 999.
func (p Purity) StandardKarat() bool {
	return p.Metal == entity.MetalGold && goldKaratFineness[p.Karat] == p.Fineness
}

// quilates de oro ↔ finura (BIS).
var goldKaratFineness = map[int]int{
	24: 999, 23: 958, 22: 916, 21: 875, 20: 833, 18: 750, 14: 585, 9: 375,
}

var goldFinenessKarat = map[int]int{
	999: 24, 995: 24, 958: 23, 916: 22, 875: 21, 833: 20, 750: 18, 585: 14, 375: 9,
}

var silverFineness = map[int]bool{999: true, 958: true, 925: true, 900: true, 800: true}

// NormalizeMetal devuelve gold o silver. Un metal vacío o desconocido cae en
// oro con ok=false.
func NormalizeMetal(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gold", "au", "oro", "sona":
		return entity.MetalGold, true
	case "silver", "ag", "plata", "chandi":
		return entity.MetalSilver, true
	}
	return entity.MetalGold, false
}

// NormalizePurity interpreta strings como "22K", "22 kt", "916", "18KT", "925".
// Nunca falla: lo no reconocido se resuelve a 22K (oro) o 999 (plata) con ok=false.
func NormalizePurity(metal, raw string) (Purity, bool) {
	metal, metalOK := NormalizeMetal(metal)
	n, parsed := leadingNumber(raw)

	if metal == entity.MetalSilver {
		if parsed && silverFineness[n] {
			return Purity{Metal: metal, Fineness: n}, metalOK
		}
		return Purity{Metal: metal, Fineness: DefaultSilverFineness}, false
	}

	if parsed {
		if f, ok := goldKaratFineness[n]; ok {
			return Purity{Metal: metal, Karat: n, Fineness: f}, metalOK
		}
		if k, ok := goldFinenessKarat[n]; ok {
			return Purity{Metal: metal, Karat: k, Fineness: n}, metalOK
		}
	}
	return Purity{Metal: metal, Karat: DefaultGoldKarat, Fineness: goldKaratFineness[DefaultGoldKarat]}, false
}

// leadingNumber extrae el primer bloque de dígitos ("22kt" → 22, "91.6" → 916).
func leadingNumber(s string) (int, bool) {
	var digits []rune
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
			continue
		}
		if len(digits) > 0 && r != '.' {
			break
		}
	}
	if len(digits) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}
