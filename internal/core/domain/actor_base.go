package domain

import (
	"github.com/asynkron/protoactor-go/actor"
)

// ActorRef aliases a protoactor PID so message definitions stay free
// of direct actor-library plumbing.
type ActorRef actor.PID

// ActorRequest is implemented by every request message. A request may
// carry an explicit reply address; responders fall back to the message
// sender when it is unset.
type ActorRequest interface {
	ReplyTo() *ActorRef
}

// ActorRequestMixIn gives a request message its optional reply
// address. Embed it in every request struct.
type ActorRequestMixIn struct {
	ReplyToRef *ActorRef
}

func (r ActorRequestMixIn) ReplyTo() *ActorRef {
	return r.ReplyToRef
}

// ActorResponse is implemented by every response message. Responses
// carry their error inline instead of failing the future, so the
// receiving actor decides how to react.
type ActorResponse interface {
	GetResponseError() error
	HasResponseError() bool
}

// ActorResponseMixIn gives a response message its error slot. Embed it
// in every response struct.
type ActorResponseMixIn struct {
	ResponseError error
}

func (r ActorResponseMixIn) GetResponseError() error {
	return r.ResponseError
}

func (r ActorResponseMixIn) HasResponseError() bool {
	return r.ResponseError != nil
}
