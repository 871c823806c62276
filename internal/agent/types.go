package agent

import "github.com/atlaschat/atlaschat/internal/models"

type mapRequest struct {
	Prompt    string `json:"prompt"`
	ModelName string `json:"model_name"`
}

// mapResponse mirrors the wire shape permissively: every field is optional
// and coordinates are decoded as pointers so absent and null are
// indistinguishable from each other but distinct from zero.
type mapResponse struct {
	Response *string      `json:"response"`
	Center   *wireCenter  `json:"center"`
	Places   *[]wirePlace `json:"places"`
}

type wireCenter struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Label string   `json:"label"`
}

type wirePlace struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Address string   `json:"address"`
}

type modelsResponse struct {
	Data []models.ModelOption `json:"data"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// MapResult is one successful agent answer. Center is nil unless the
// response carried a numerically valid center. HasPlaces distinguishes an
// absent places field (skip the update) from an explicit empty list (clear
// the markers).
type MapResult struct {
	Response  string
	Center    *models.Center
	Places    []models.Place
	HasPlaces bool
}
