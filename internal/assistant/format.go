package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

// NoMatchMessage is sent when a lookup returns no rows.
const NoMatchMessage = "目前找不到符合的車輛喔～可以再提供更明確的條件嗎？"

// FormatCars renders one line per car:
//
//	🚗 <brand> <model> <year>年｜售價：<price>萬
//
// An empty slice yields NoMatchMessage.
func FormatCars(cars []models.Car) string {
	if len(cars) == 0 {
		return NoMatchMessage
	}
	lines := make([]string, 0, len(cars))
	for _, c := range cars {
		lines = append(lines, fmt.Sprintf("🚗 %s %s %d年｜售價：%s萬",
			c.Brand, c.Model, c.Year, strconv.FormatFloat(c.Price, 'f', -1, 64)))
	}
	return strings.Join(lines, "\n")
}
