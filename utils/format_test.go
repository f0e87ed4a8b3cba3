package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 5,00"},
		{50.5, "R$ 50,50"},
		{999.99, "R$ 999,99"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{0.005, "R$ 0,01"},
		{-12.3, "-R$ 12,30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.in), "FormatBRL(%v)", tt.in)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2024", FormatDate(d, nil))

	saoPaulo := time.FixedZone("BRT", -3*60*60)
	assert.Equal(t, "07/03/2024", FormatDate(d, saoPaulo))
	assert.Equal(t, "08/03/2024", FormatDate(d.Add(4*time.Hour), saoPaulo))
	assert.Equal(t, "", FormatDate(time.Time{}, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", Truncate("curto", 10))
	assert.Equal(t, "Cadeira de...", Truncate("Cadeira de balanço", 10))
	assert.Equal(t, "Sofá ...", Truncate("Sofá retrátil", 5))
	assert.Equal(t, "sem limite", Truncate("sem limite", 0))
}

func TestWhatsappURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/5511987654321", WhatsappURL("+55 (11) 98765-4321", ""))
	assert.Equal(t,
		"https://wa.me/5511987654321?text=Ol%C3%A1%21%20Bike%20%26%20capacete",
		WhatsappURL("5511987654321", "Olá! Bike & capacete"))
	assert.Equal(t, "", WhatsappURL("sem número", "oi"))
}

func TestInterestMessage(t *testing.T) {
	assert.Equal(t,
		`Olá! Vi o produto "Bicicleta" (R$ 300,00) no Desapego dos Martins e tenho interesse!`,
		InterestMessage("Desapego dos Martins", "Bicicleta", "R$ 300,00"))
}
