package responses

// CountryPrice — строка пер-сервисного прайса: цена и наличие в одной
// стране, страна задана идентификатором из справочника.
type CountryPrice struct {
	CountryID int     `json:"countryId"`
	Cost      float64 `json:"cost"`
	Count     int     `json:"count"`
	Rate      float64 `json:"rate"`
}

type ServicePriceResponse struct {
	TopCountries []CountryPrice `json:"topCountries"`
}
