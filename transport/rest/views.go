package rest

type newGameRequest struct {
	Name string `json:"name"`
}

type savedView struct {
	ID string `json:"id"`
}

type errorView struct {
	Error string `json:"error"`
}
