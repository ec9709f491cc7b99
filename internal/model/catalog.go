package model

type Person struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Height int64  `json:"height"`
	Mass   int64  `json:"mass"`
}

type Planet struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Climate    string `json:"climate"`
	Gravity    string `json:"gravity"`
	Population int64  `json:"population"`
}
