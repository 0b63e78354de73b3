package model

type Greeting struct {
	Message string `json:"message"`
}
