package models

// Car is one row of the inventory table. JSON names are the table's
// column names so REST rows decode directly.
type Car struct {
	Brand string  `json:"廠牌"`
	Model string  `json:"車型"`
	Year  int     `json:"年份"`
	Price float64 `json:"車輛售價"` // in units of 10,000 TWD
}
