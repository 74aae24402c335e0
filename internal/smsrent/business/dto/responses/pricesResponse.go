package responses

import "encoding/json"

type OperatorPricing struct {
	Cost  float64 `json:"cost"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// ServicePricing — значение на уровне сервиса в ответе getPrices.
// Провайдер отдаёт либо лист {cost,count,rate}, либо карту
// оператор → лист; форма определяется при декодировании, без
// рефлексии по месту использования.
type ServicePricing struct {
	Direct     *OperatorPricing
	ByOperator map[string]OperatorPricing
}

func (sp *ServicePricing) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	// Значения-объекты означают операторную форму; значения-числа — лист.
	for _, value := range probe {
		if len(value) > 0 && value[0] == '{' {
			sp.Direct = nil
			return json.Unmarshal(data, &sp.ByOperator)
		}
		break
	}

	var leaf OperatorPricing
	if err := json.Unmarshal(data, &leaf); err != nil {
		return err
	}
	sp.Direct = &leaf
	sp.ByOperator = nil
	return nil
}

// PricesResponse: страна → сервис → цены.
type PricesResponse map[string]map[string]ServicePricing
