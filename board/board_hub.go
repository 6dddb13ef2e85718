// Package board pushes kitchen and staff events over websocket. Polling the
// cooker endpoints stays the primary read path; the hub just shortens the
// window between a change and the next poll.
package board

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/thanakornw/dineqr/models"
)

// Event types
const (
	EventOrderUpdate    = "order_update"
	EventItemUpdate     = "item_update"
	EventTableUpdate    = "table_update"
	EventWaiterCall     = "waiter_call"
	EventPaymentUpdate  = "payment_update"
	EventBoardSnapshot  = "board_snapshot"
	EventDashboardStats = "dashboard_stats"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected board client (cooker, admin screens) keyed by
// role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount reports connected clients, used by the snapshot monitor to
// skip work when nobody is watching.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastOrderUpdate pushes an order change to every client.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastItemUpdate pushes an item-level status change.
func BroadcastItemUpdate(item models.OrderItem) {
	broadcast(Message{Event: EventItemUpdate, Data: item})
}

// BroadcastTableUpdate pushes a table status change.
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastWaiterCall notifies staff screens of a customer call.
func BroadcastWaiterCall(call models.WaiterCall) {
	broadcast(Message{Event: EventWaiterCall, Data: call})
}

// BroadcastPaymentUpdate pushes a payment change with its order.
func BroadcastPaymentUpdate(payment models.Payment, order models.Order) {
	broadcast(Message{
		Event: EventPaymentUpdate,
		Data: map[string]interface{}{
			"payment": payment,
			"order":   order,
		},
	})
}

// BroadcastMessage pushes an arbitrary event.
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for conn := range hub.clients {
		// A dead client is dropped on its next read, keep going
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}
