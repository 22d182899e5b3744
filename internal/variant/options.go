package variant

// ColorOption is a selectable swatch offered by the admin product form.
type ColorOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hex   string `json:"hex"`
}

var DefaultColors = []ColorOption{
	{Label: "Black", Value: "BLACK", Hex: "#000000"},
	{Label: "White", Value: "WHITE", Hex: "#FFFFFF"},
	{Label: "Red", Value: "RED", Hex: "#EF4444"},
	{Label: "Blue", Value: "BLUE", Hex: "#3B82F6"},
	{Label: "Green", Value: "GREEN", Hex: "#22C55E"},
	{Label: "Yellow", Value: "YELLOW", Hex: "#EAB308"},
	{Label: "Purple", Value: "PURPLE", Hex: "#A855F7"},
	{Label: "Pink", Value: "PINK", Hex: "#EC4899"},
	{Label: "Orange", Value: "ORANGE", Hex: "#F97316"},
	{Label: "Gray", Value: "GRAY", Hex: "#6B7280"},
	{Label: "Brown", Value: "BROWN", Hex: "#92400E"},
	{Label: "Navy", Value: "NAVY", Hex: "#1E3A5F"},
}

var DefaultSizes = []string{
	"XS", "S", "M", "L", "XL", "XXL", "XXXL",
	"28", "30", "32", "34", "36", "38", "40",
	"6", "7", "8", "9", "10", "11", "12", "ONE SIZE",
}

var DefaultUnits = []string{"UNIT", "KG", "GRAM", "LITER", "METER", "PIECE", "BOX", "PACK"}
