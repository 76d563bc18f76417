package helpers

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
)

func Ptr[T any](value T) *T {
	return &value
}

func SafeValue[T any](value *T) T {
	if value == nil {
		return *new(T)
	}
	return *value
}

func SafeLastN[T any](slice []T, lastN int) []T {
	if len(slice) > lastN {
		return slice[len(slice)-lastN:]
	}
	return slice
}

func NatsPublish(nc *nats.Conn, subject string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return nc.Publish(subject, payloadJSON)
}
