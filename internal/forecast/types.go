package forecast

import "time"

// Point is one forecast row.
type Point struct {
	Date  time.Time
	Value float64
}

// Result is an ordered forecast. Points[i].Date is Start plus i days.
type Result struct {
	City   string
	Start  time.Time
	Points []Point
}

// Days returns the horizon of the result.
func (r Result) Days() int { return len(r.Points) }

// Values returns the predicted values in order.
func (r Result) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}
