package pricing

import "github.com/shopspring/decimal"

type rateKey struct {
	metal    string
	fineness int
}

// RateBook tarifas por gramo resueltas una sola vez por render y pasadas de
// forma explícita a quien valoriza. No es seguro para escritura concurrente;
// se llena antes de usarse.
type RateBook struct {
	rates map[rateKey]decimal.Decimal
}

// NewRateBook crea un libro vacío.
func NewRateBook() *RateBook {
	return &RateBook{rates: make(map[rateKey]decimal.Decimal)}
}

// Set registra la tarifa de una pureza.
func (b *RateBook) Set(p Purity, rate decimal.Decimal) {
	b.rates[rateKey{p.Metal, p.Fineness}] = rate
}

// Rate devuelve la tarifa y si existía. Una pureza sin tarifa valoriza el metal
// en cero.
func (b *RateBook) Rate(p Purity) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	r, ok := b.rates[rateKey{p.Metal, p.Fineness}]
	return r, ok
}

// Len número de tarifas registradas.
func (b *RateBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.rates)
}
