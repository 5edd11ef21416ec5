package types

const (
	TypeWebsocketPing     = "ping"
	TypeWebsocketPong     = "pong"
	TypeWebsocketAsk      = "ask"
	TypeWebsocketFragment = "fragment"
	TypeWebsocketDone     = "done"
	TypeWebsocketError    = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketAskPayload struct {
	Text string `json:"text"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type WebsocketFragmentPayload struct {
	Text string `json:"text"`
}

// StreamHandler receives generation fragments in arrival order.
type StreamHandler func(fragment string)
