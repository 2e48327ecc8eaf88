package view

// Response is the JSON envelope returned by every handler.
type Response[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func CreateResponse[T any](data T, err error, _ any, message string) Response[T] {
	resp := Response[T]{
		Data:    data,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
