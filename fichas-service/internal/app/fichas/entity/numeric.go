package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalFlex принимает JSON-число или числовую строку ("5.50", "5,50").
// null, пустая строка и мусор дают Valid == false без ошибки декодирования.
type DecimalFlex struct {
	Decimal decimal.Decimal
	Valid   bool
}

func NewDecimalFlex(value string) DecimalFlex {
	var d DecimalFlex
	d.parse(value)
	return d
}

func (d *DecimalFlex) UnmarshalJSON(data []byte) error {
	d.Decimal, d.Valid = decimal.Zero, false
	d.parse(rawJSONValue(data))
	return nil
}

func (d DecimalFlex) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Decimal.String())
}

func (d *DecimalFlex) parse(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return
	}
	d.Decimal, d.Valid = value, true
}

// OrZero - значение или 0, если поле не распознано
func (d DecimalFlex) OrZero() decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func (d DecimalFlex) Nullable() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d.Decimal, Valid: d.Valid}
}

var (
	minInt = decimal.NewFromInt(math.MinInt)
	maxInt = decimal.NewFromInt(math.MaxInt)
)

// IntFlex - целое из числа или строки. Дробная часть отбрасывается.
type IntFlex struct {
	Int   int
	Valid bool
}

func NewIntFlex(value int) IntFlex {
	return IntFlex{Int: value, Valid: true}
}

func (i *IntFlex) UnmarshalJSON(data []byte) error {
	i.Int, i.Valid = 0, false

	raw := strings.TrimSpace(rawJSONValue(data))
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		i.Int, i.Valid = n, true
		return nil
	}
	// за пределами int значение считается нераспознанным, как и мусор
	if d, err := decimal.NewFromString(raw); err == nil {
		d = d.Truncate(0)
		if d.GreaterThanOrEqual(minInt) && d.LessThanOrEqual(maxInt) {
			i.Int, i.Valid = int(d.IntPart()), true
		}
	}
	return nil
}

func (i IntFlex) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Int)
}

// Ptr - nil для отсутствующего значения, как ожидает GORM для NULL
func (i IntFlex) Ptr() *int {
	if !i.Valid {
		return nil
	}
	v := i.Int
	return &v
}

func rawJSONValue(data []byte) string {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return ""
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return s
	}
	return string(data)
}
