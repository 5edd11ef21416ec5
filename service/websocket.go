package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cloudservices/kbot/types"
)

// WebsocketService answers ask requests over a websocket, delivering the
// generated text as fragment frames followed by a done frame.
type WebsocketService struct {
	knowledge KnowledgeGatherer
	template  PromptTemplate
	invoker   *Invoker
	upgrader  websocket.Upgrader
}

func NewWebsocketService(knowledge KnowledgeGatherer, template PromptTemplate, invoker *Invoker) *WebsocketService {
	return &WebsocketService{
		knowledge: knowledge,
		template:  template,
		invoker:   invoker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *WebsocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			log.Println("Unmarshal error:", err)
			s.writeError(conn, "Error processing message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketAsk:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				log.Println("Marshal error:", err)
				s.writeError(conn, "Error processing message")
				continue
			}
			var payload types.WebsocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, "Error processing message")
				continue
			}
			s.ask(ctx, conn, payload.Text)
		case types.TypeWebsocketPing:
			if err := conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type")
		}
	}
}

func (s *WebsocketService) ask(ctx context.Context, conn *websocket.Conn, query string) {
	knowledge := s.knowledge.Gather(ctx, query)
	prompt := s.template.Render(query, knowledge)

	_, err := s.invoker.InvokeStream(ctx, prompt, func(fragment string) {
		res := types.WebsocketResponse{
			Type:    types.TypeWebsocketFragment,
			Payload: types.WebsocketFragmentPayload{Text: fragment},
		}
		if err := conn.WriteJSON(res); err != nil {
			log.Println("Write error:", err)
		}
	})
	if err != nil {
		log.Println("Generation error:", err)
		s.writeError(conn, "Error processing data with the model")
		return
	}

	if err := conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketDone}); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebsocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketFragmentPayload{Text: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
