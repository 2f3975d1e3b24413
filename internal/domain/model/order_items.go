package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product+quantity+price entry inside an order's frozen
// snapshot. ProductID is kept so a cancellation can restore stock even after
// the product row changed.
type LineItem struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(li.Qty))
}

// OrderItems is the snapshot column. Stored as a plain JSON array; reading
// tolerates the legacy single-quoted literal encoding and degrades to an
// empty list on unparseable input instead of failing the row.
type OrderItems []LineItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*items = OrderItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*items = OrderItems{}
		return nil
	}
	*items = decodeLineItems(raw)
	return nil
}

// Summary joins the first three "name xqty" fragments, with an ellipsis
// marker when more lines exist.
func (items OrderItems) Summary() string {
	if len(items) == 0 {
		return ""
	}
	n := len(items)
	if n > 3 {
		n = 3
	}
	parts := make([]string, 0, n)
	for _, it := range items[:n] {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Qty))
	}
	s := strings.Join(parts, ", ")
	if len(items) > 3 {
		s += "..."
	}
	return s
}

func decodeLineItems(raw []byte) OrderItems {
	if len(bytes.TrimSpace(raw)) == 0 {
		return OrderItems{}
	}
	if items, ok := unmarshalLineItems(raw); ok {
		return items
	}
	// Rows written before the JSON codec used a single-quoted literal form.
	// Read-only migration path; never written back.
	if items, ok := unmarshalLineItems(normalizeLegacyLiteral(raw)); ok {
		return items
	}
	return OrderItems{}
}

// lineItemWire accepts the loose field types found in old rows: quantities
// and prices may arrive as numbers or numeric strings.
type lineItemWire struct {
	ID    interface{} `json:"id"`
	Name  string      `json:"name"`
	Qty   interface{} `json:"qty"`
	Price interface{} `json:"price"`
}

func unmarshalLineItems(raw []byte) (OrderItems, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var wire []lineItemWire
	if err := dec.Decode(&wire); err != nil {
		return nil, false
	}
	items := make(OrderItems, 0, len(wire))
	for _, w := range wire {
		items = append(items, LineItem{
			ProductID: coerceInt(w.ID, 0),
			Name:      w.Name,
			Qty:       coerceInt(w.Qty, 1),
			Price:     coerceDecimal(w.Price),
		})
	}
	return items, true
}

func coerceInt(v interface{}, def int64) int64 {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return i
		}
	case float64:
		return int64(t)
	}
	return def
}

func coerceDecimal(v interface{}) decimal.Decimal {
	switch t := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(t)); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(t)
	}
	return decimal.Zero
}

// normalizeLegacyLiteral rewrites the single-quoted legacy encoding into
// JSON: 'x' strings become "x", True/False/None become true/false/null.
func normalizeLegacyLiteral(raw []byte) []byte {
	s := string(raw)
	var out strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '"':
			out.WriteByte('"')
			i++
			for i < len(s) {
				out.WriteByte(s[i])
				if s[i] == '\\' && i+1 < len(s) {
					i++
					out.WriteByte(s[i])
				} else if s[i] == '"' {
					break
				}
				i++
			}
			i++
		case '\'':
			out.WriteByte('"')
			i++
			for i < len(s) && s[i] != '\'' {
				switch s[i] {
				case '"':
					out.WriteString(`\"`)
				case '\\':
					out.WriteByte('\\')
					if i+1 < len(s) {
						i++
						out.WriteByte(s[i])
					}
				default:
					out.WriteByte(s[i])
				}
				i++
			}
			out.WriteByte('"')
			i++
		default:
			switch {
			case strings.HasPrefix(s[i:], "True"):
				out.WriteString("true")
				i += 4
			case strings.HasPrefix(s[i:], "False"):
				out.WriteString("false")
				i += 5
			case strings.HasPrefix(s[i:], "None"):
				out.WriteString("null")
				i += 4
			default:
				out.WriteByte(c)
				i++
			}
		}
	}
	return []byte(out.String())
}
