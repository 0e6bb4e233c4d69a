package router

import (
	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/transport"
)

// transportAdapter lets a core.Socket push through a transport.WebSocket.
type transportAdapter struct {
	ws *transport.WebSocket
}

func newTransportAdapter(ws *transport.WebSocket) *transportAdapter {
	return &transportAdapter{ws: ws}
}

func (a *transportAdapter) Send(msg core.Message) error {
	return a.ws.Send(transport.Message{
		Ref:     msg.Ref,
		Topic:   msg.Topic,
		Event:   msg.Event,
		Payload: msg.Payload,
	})
}

func (a *transportAdapter) Close() error {
	return a.ws.Close()
}

func (a *transportAdapter) IsConnected() bool {
	return a.ws.IsConnected()
}
