package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalFlex_Unmarshal(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		value string
	}{
		{`5.5`, true, "5.5"},
		{`"5.50"`, true, "5.5"},
		{`"5,50"`, true, "5.5"},
		{`0`, true, "0"},
		{`"-2"`, true, "-2"},
		{`null`, false, "0"},
		{`""`, false, "0"},
		{`"abc"`, false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var d DecimalFlex
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.Equal(t, tt.valid, d.Valid)
			assert.Equal(t, tt.value, d.OrZero().String())
		})
	}
}

func TestDecimalFlex_MarshalAsString(t *testing.T) {
	data, err := json.Marshal(struct {
		Preco DecimalFlex `json:"preco"`
		Peso  DecimalFlex `json:"peso"`
	}{Preco: NewDecimalFlex("12.30")})

	require.NoError(t, err)
	assert.JSONEq(t, `{"preco":"12.3","peso":null}`, string(data))
}

func TestIntFlex_Unmarshal(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		value int
	}{
		{`40`, true, 40},
		{`"180"`, true, 180},
		{`"12.9"`, true, 12},
		{`null`, false, 0},
		{`"quente"`, false, 0},
		{`1e30`, false, 0},
		{`"99999999999999999999"`, false, 0},
		{`-1e19`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var i IntFlex
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &i))
			assert.Equal(t, tt.valid, i.Valid)
			assert.Equal(t, tt.value, i.Int)
			if !tt.valid {
				assert.Nil(t, i.Ptr())
			}
		})
	}
}
