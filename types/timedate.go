package types

import (
	"fmt"
	"time"

	"github.com/smartcalc/smartcalc/catalog"
)

// Duration is a span of time expressed in whole seconds (spec.md §3).
type Duration struct {
	Seconds int64
}

func NewDuration(seconds int64) *Duration { return &Duration{Seconds: seconds} }

func (d *Duration) TypeName() string             { return "Duration" }
func (d *Duration) GetUnderlyingNumber() float64 { return float64(d.Seconds) }

func (d *Duration) GetNumber(peer Item) float64 {
	if _, same := peer.(*Duration); same {
		return d.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (d *Duration) Print(cat *catalog.Catalog) string {
	secs := d.Seconds
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	minutes := secs / 60
	secs %= 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	out := sign
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

func (d *Duration) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Number:
		if op != Mul && op != Div {
			return nil, ErrNoResult
		}
		return scaleDuration(d, o.GetUnderlyingNumber(), op)

	case *Duration:
		if op != Add && op != Sub {
			return nil, ErrNoResult
		}
		left, right := d.Seconds, o.Seconds
		if !onLeft {
			left, right = right, left
		}
		if op == Add {
			return &Duration{Seconds: left + right}, nil
		}
		return &Duration{Seconds: left - right}, nil

	case *Time:
		return o.Calculate(cat, !onLeft, d, op)

	case *Date:
		return o.Calculate(cat, !onLeft, d, op)
	}
	return nil, ErrNoResult
}

func scaleDuration(d *Duration, scalar float64, op Op) (Item, error) {
	switch op {
	case Mul:
		return &Duration{Seconds: int64(float64(d.Seconds) * scalar)}, nil
	case Div:
		if scalar == 0 {
			return &Duration{Seconds: 0}, nil
		}
		return &Duration{Seconds: int64(float64(d.Seconds) / scalar)}, nil
	}
	return nil, ErrNoResult
}

// Time is a clock time, stored as seconds since midnight (spec.md §3).
type Time struct {
	Seconds int // 0..86400, may exceed via arithmetic before normalization
}

func NewTime(hour, minute, second int) *Time {
	return &Time{Seconds: hour*3600 + minute*60 + second}
}

func (t *Time) normalized() int {
	s := t.Seconds % 86400
	if s < 0 {
		s += 86400
	}
	return s
}

func (t *Time) TypeName() string             { return "Time" }
func (t *Time) GetUnderlyingNumber() float64 { return float64(t.Seconds) }

func (t *Time) GetNumber(peer Item) float64 {
	if _, same := peer.(*Time); same {
		return t.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (t *Time) Print(cat *catalog.Catalog) string {
	s := t.normalized()
	h, m, sec := s/3600, (s%3600)/60, s%60
	if sec == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func (t *Time) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	d, ok := other.(*Duration)
	if !ok {
		return nil, ErrNoResult
	}
	if op != Add && op != Sub {
		return nil, ErrNoResult
	}
	delta := d.Seconds
	if op == Sub {
		delta = -delta
	}
	if !onLeft {
		// Duration op Time with op Sub has no natural reading
		// ("duration minus time"); only addition is commutative here.
		if op != Add {
			return nil, ErrNoResult
		}
	}
	return &Time{Seconds: t.Seconds + int(delta)}, nil
}

// Date is a calendar date (spec.md §3).
type Date struct {
	Year, Month, Day int
}

func NewDate(y, m, d int) *Date { return &Date{Year: y, Month: m, Day: d} }

func (d *Date) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d *Date) TypeName() string             { return "Date" }
func (d *Date) GetUnderlyingNumber() float64 { return float64(d.toTime().Unix()) }

func (d *Date) GetNumber(peer Item) float64 {
	if _, same := peer.(*Date); same {
		return d.GetUnderlyingNumber()
	}
	return peer.GetUnderlyingNumber()
}

func (d *Date) Print(cat *catalog.Catalog) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d *Date) Calculate(cat *catalog.Catalog, onLeft bool, other Item, op Op) (Item, error) {
	switch o := other.(type) {
	case *Date:
		if op != Sub {
			return nil, ErrNoResult
		}
		left, right := d, o
		if !onLeft {
			left, right = right, left
		}
		secs := int64(left.toTime().Sub(right.toTime()).Seconds())
		return &Duration{Seconds: secs}, nil

	case *Duration:
		if op != Add && op != Sub {
			return nil, ErrNoResult
		}
		delta := o.Seconds
		if op == Sub {
			if !onLeft {
				return nil, ErrNoResult
			}
			delta = -delta
		} else if !onLeft {
			// Duration + Date reads the same as Date + Duration.
		}
		result := d.toTime().Add(time.Duration(delta) * time.Second)
		return &Date{Year: result.Year(), Month: int(result.Month()), Day: result.Day()}, nil
	}
	return nil, ErrNoResult
}
