package models

// CanonicalCountry — единая запись страны, к которой сводятся
// словари обоих провайдеров.
type CanonicalCountry struct {
	Name          string `yaml:"name" json:"name"`
	LocalizedName string `yaml:"localized_name" json:"localizedName"`
	Code          string `yaml:"code" json:"code"`
}
