package inventory

import "github.com/shopspring/decimal"

// EstimatedOrderCost costo estimado de un pedido (servicio de dominio).
// Costo = (Cantidad * PrecioUnitario) + CostoPedido
func EstimatedOrderCost(quantity int, unitPrice, orderCost decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Add(orderCost)
}
