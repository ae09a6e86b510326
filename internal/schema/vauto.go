package schema

// Vauto describes the vAuto inventory export (ALLINVENTORYVAR report,
// .xls or .xlsx). Status is optional: only some vAuto reports carry it,
// and status comparison is skipped when it is absent.
var Vauto = SourceSpec{
	Name: "vAuto",
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
			Label:    "Dealer Name",
			Aliases:  []string{"Dealer Name", "Dealer Location", "Store Name", "Store", "Dealer", "Dealership", "Location"},
			Required: true,
		},
		{
			Key:      ColType,
			Label:    "Type",
			Aliases:  []string{"Type", "Inventory Type", "New/Used", "N/U", "Vehicle Type"},
			Required: true,
		},
		{
			Key:     ColStatus,
			Label:   "Status",
			Aliases: []string{"Status", "Vehicle Status", "Inventory Status"},
		},
	},
}
