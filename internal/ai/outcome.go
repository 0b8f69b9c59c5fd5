package ai

type Status string

const (
	StatusSuccess            Status = "success"
	StatusValidationRejected Status = "validation_rejected"
	StatusUpstreamFailed     Status = "upstream_failed"
)

// Outcome: akış sonucu. Data sadece Success durumunda dolu.
type Outcome[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data"`
}

func Success[T any](data T) Outcome[T] {
	return Outcome[T]{Status: StatusSuccess, Data: &data}
}

func ValidationRejected[T any](reason string) Outcome[T] {
	return Outcome[T]{Status: StatusValidationRejected, Message: reason}
}

func UpstreamFailed[T any](message string) Outcome[T] {
	return Outcome[T]{Status: StatusUpstreamFailed, Message: message}
}

func (o Outcome[T]) OK() bool { return o.Status == StatusSuccess }

// HTTPStatus: 200 / 422 / 502
func (o Outcome[T]) HTTPStatus() int {
	switch o.Status {
	case StatusSuccess:
		return 200
	case StatusValidationRejected:
		return 422
	}
	return 502
}
