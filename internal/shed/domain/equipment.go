package domain

// Equipment is one item of studio gear stored in the shed.
type Equipment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ValueUSD int    `json:"valueUSD"`
}

// EquipmentList is the inventory response, totalled for convenience.
type EquipmentList struct {
	Equipment     []Equipment `json:"equipment"`
	TotalValueUSD int         `json:"totalValueUSD"`
}
