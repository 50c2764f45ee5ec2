package domain

// BuyTxParams is the input data for the buy transaction.
type BuyTxParams struct {
	Username   string `json:"username"`
	AssetClass string `json:"asset_class"`
	Symbol     string `json:"symbol"`
	Amount     string `json:"amount"`   // cash debited, must be positive
	Quantity   string `json:"quantity"` // units credited to the holding
}

// SellTxParams is the input data for the sell transaction.
type SellTxParams struct {
	Username   string `json:"username"`
	AssetClass string `json:"asset_class"`
	Symbol     string `json:"symbol"`
	Quantity   string `json:"quantity"` // units debited from the holding
	Price      string `json:"price"`    // reference price at execution
}

// TradeTxResult is the result of a buy or sell transaction.
type TradeTxResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
	Holding Holding `json:"holding"`
}

// SaleResult extends the trade result with the credited proceeds.
type SaleResult struct {
	TradeTxResult
	Proceeds string `json:"proceeds"`
}
