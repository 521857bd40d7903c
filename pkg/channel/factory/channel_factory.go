package factory

import (
	"errors"

	"github.com/mpapenbr/pitwall-go/pkg/channel"
)

type ChannelType string

var (
	ErrChannelTypeNotSupported = errors.New("channel type not supported")
	ErrChannelWrongCreator     = errors.New("channel wrong creator")
)

//nolint:lll //readability
type Creator[S channel.Channel, ImplOpt any] func([]channel.Option, []ImplOpt) (S, error)

var registry = map[ChannelType]any{}

// Register a new implementation generically
//
//nolint:whitespace //editor/linter issue
func Register[S channel.Channel, ImplOpt any](
	key ChannelType, creator Creator[S, ImplOpt],
) {
	registry[key] = creator
}

// Create a new instance
//
//nolint:whitespace //editor/linter issue
func New[S channel.Channel, ImplOpt any](
	key ChannelType,
	common []channel.Option,
	specific []ImplOpt,
) (S, error) {
	entry, ok := registry[key]
	if !ok {
		var zero S
		return zero, ErrChannelTypeNotSupported
	}
	creator, ok := entry.(Creator[S, ImplOpt])
	if !ok {
		var zero S
		return zero, ErrChannelWrongCreator
	}
	return creator(common, specific)
}

// Types returns the registered channel types
func Types() []ChannelType {
	ret := make([]ChannelType, 0, len(registry))
	for k := range registry {
		ret = append(ret, k)
	}
	return ret
}
