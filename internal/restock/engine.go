package restock

import (
	"math"
	"sort"
	"time"

	"catalogadmin/backend/internal/domain"
)

// Suggestion is one row of the restock report, ranked by urgency.
type Suggestion struct {
	ProductID         string  `json:"productId"`
	ProductName       string  `json:"productName"`
	SKU               string  `json:"sku,omitempty"`
	Stock             int     `json:"stock"`
	ReorderLevel      int     `json:"reorderLevel"`
	SoldRecently      int     `json:"soldRecently"`
	SuggestedQuantity int     `json:"suggestedQuantity"`
	Urgency           float64 `json:"urgency"`
}

type Engine struct {
	salesWindow time.Duration
	minUrgency  float64
}

func NewEngine(salesWindow time.Duration) *Engine {
	if salesWindow <= 0 {
		salesWindow = 30 * 24 * time.Hour
	}
	return &Engine{
		salesWindow: salesWindow,
		minUrgency:  0.15,
	}
}

func (e *Engine) SalesWindow() time.Duration {
	return e.salesWindow
}

// Suggest ranks active products that are at or below their reorder level.
// Recent delivered orders feed a demand signal so fast movers surface first
// and the suggested quantity covers both the deficit and observed demand.
func (e *Engine) Suggest(products []domain.Product, orders []domain.Order) []Suggestion {
	sold := make(map[string]int)
	for _, order := range orders {
		if order.Status != domain.OrderDelivered {
			continue
		}
		for _, item := range order.Items {
			sold[item.ProductID] += item.Quantity
		}
	}

	suggestions := make([]Suggestion, 0)
	for _, product := range products {
		if !product.Active || product.ReorderLevel <= 0 {
			continue
		}
		if product.Stock > product.ReorderLevel {
			continue
		}

		deficit := product.ReorderLevel - product.Stock
		soldRecently := sold[product.ID]

		deficitScore := clamp(float64(deficit)/float64(product.ReorderLevel), 0, 1)
		demandScore := clamp(float64(soldRecently)/20.0, 0, 1)
		emptyShelf := 0.0
		if product.Stock == 0 {
			emptyShelf = 1.0
		}

		urgency := 0.50*deficitScore + 0.30*demandScore + 0.20*emptyShelf
		if urgency < e.minUrgency {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			ProductID:         product.ID,
			ProductName:       product.Name,
			SKU:               product.SKU,
			Stock:             product.Stock,
			ReorderLevel:      product.ReorderLevel,
			SoldRecently:      soldRecently,
			SuggestedQuantity: deficit + soldRecently,
			Urgency:           round2(urgency),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Urgency != suggestions[j].Urgency {
			return suggestions[i].Urgency > suggestions[j].Urgency
		}
		return suggestions[i].ProductName < suggestions[j].ProductName
	})
	return suggestions
}

func clamp(val float64, minVal float64, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
