package models

// Идентификаторы провайдеров. Провайдер A рассчитывается в рублях,
// провайдер B — в долларах.
const (
	ProviderSmsRent = "smsrent"
	ProviderVirtNum = "virtnum"
)
