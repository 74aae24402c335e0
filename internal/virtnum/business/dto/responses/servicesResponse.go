package responses

type Service struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ServicesResponse struct {
	Services []Service `json:"services"`
}
