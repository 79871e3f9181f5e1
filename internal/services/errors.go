package services

// ArgumentError reports a request that refers to something that cannot be
// used, such as an unknown produto. Its message is meant for the client.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// NewArgumentError creates an ArgumentError with the given client message.
func NewArgumentError(message string) *ArgumentError {
	return &ArgumentError{Message: message}
}

// ErrProdutoNaoEncontrado is returned by Update and Delete for unknown IDs.
var ErrProdutoNaoEncontrado = NewArgumentError("Produto não encontrado.")
