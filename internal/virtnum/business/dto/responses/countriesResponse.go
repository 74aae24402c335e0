package responses

type Country struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type CountriesResponse struct {
	Countries []Country `json:"countries"`
}
