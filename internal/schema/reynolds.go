package schema

// Reynolds describes the Reynolds dashboard inventory export (.xlsx).
// Unlike vAuto, the status column is mandatory here: it is the side
// that carries the sale/availability state being reconciled.
var Reynolds = SourceSpec{
	Name: "Reynolds",
	Columns: []ColumnSpec{
		{
			Key:      ColVIN,
			Label:    "VIN",
			Aliases:  []string{"VIN", "VIN Number", "Vehicle Identification Number", "Vehicle ID"},
			Required: true,
		},
		{
			Key:      ColStock,
			Label:    "Stock #",
			Aliases:  []string{"Stock #", "Stock Number", "StockNum", "Stock No", "Stock"},
			Required: true,
		},
		{
			Key:      ColStore,
			Label:    "Lot Location",
			Aliases:  []string{"Lot Location", "Store", "Store Name", "Dealer", "Dealer Name", "Dealership", "Location"},
			Required: true,
		},
		{
			Key:      ColType,
			Label:    "N/U",
			Aliases:  []string{"N/U", "Type", "Inventory Type", "New/Used", "Vehicle Type"},
			Required: true,
		},
		{
			Key:      ColStatus,
			Label:    "Status",
			Aliases:  []string{"Status", "Vehicle Status", "Inventory Status"},
			Required: true,
		},
	},
}

// KnownStores lists the six dealership locations the comparison tool is
// deployed for. The store selector is driven by the stores actually
// present in an upload; this list documents the expected universe.
var KnownStores = []string{
	"Store 1",
	"Store 2",
	"Store 3",
	"Store 4",
	"Store 5",
	"Store 6",
}
