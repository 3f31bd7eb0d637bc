package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

// Event types pushed to the displays. Clients never poll; every mutation
// ends with a full snapshot broadcast of these events.
const (
	EventTablesUpdated   = "tables_updated"
	EventProductsUpdated = "products_updated"
	EventDailyRevenue    = "daily_revenue"
	EventTableLines      = "table_lines"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected display (waiter terminals, cashier, kitchen).
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var displayHub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

// RegisterClient adds a connection and immediately sends it the current
// global snapshot so a fresh display catches up without waiting for the
// next mutation.
func RegisterClient(conn *websocket.Conn, db *gorm.DB) {
	displayHub.mutex.Lock()
	displayHub.clients[conn] = struct{}{}
	displayHub.mutex.Unlock()

	for _, msg := range snapshotMessages(db) {
		sendTo(conn, msg)
	}
}

// UnregisterClient removes a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	displayHub.mutex.Lock()
	delete(displayHub.clients, conn)
	displayHub.mutex.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected displays.
func ClientCount() int {
	displayHub.mutex.Lock()
	defer displayHub.mutex.Unlock()
	return len(displayHub.clients)
}

// PublishGlobalSnapshot re-reads tables, products and today's revenue and
// pushes them to every connected display. Callers invoke it only after a
// successful commit, so no display ever sees a half-updated table.
func PublishGlobalSnapshot(db *gorm.DB) {
	for _, msg := range snapshotMessages(db) {
		broadcast(msg)
	}
}

// PublishTableLines pushes the line list of one table to every display.
func PublishTableLines(tableID uint, lines []models.OrderLine) {
	if lines == nil {
		lines = []models.OrderLine{}
	}
	broadcast(Message{
		Event: EventTableLines,
		Data: map[string]interface{}{
			"table_id": tableID,
			"lines":    lines,
		},
	})
}

// DailyRevenue returns the sum of revenue record totals for today.
func DailyRevenue(db *gorm.DB) (float64, error) {
	var total float64
	today := time.Now().Format("2006-01-02")
	err := db.Model(&models.RevenueRecord{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

// snapshotMessages reads the three global datasets. A failed read drops
// only the affected event; stale displays converge on the next broadcast.
func snapshotMessages(db *gorm.DB) []Message {
	var msgs []Message

	var tables []models.Table
	if err := db.Order("id asc").Find(&tables).Error; err != nil {
		utils.ErrorLogger.Printf("Snapshot: reading tables failed: %v", err)
	} else {
		msgs = append(msgs, Message{Event: EventTablesUpdated, Data: tables})
	}

	var products []models.Product
	if err := db.Order("name asc").Find(&products).Error; err != nil {
		utils.ErrorLogger.Printf("Snapshot: reading products failed: %v", err)
	} else {
		msgs = append(msgs, Message{Event: EventProductsUpdated, Data: products})
	}

	revenue, err := DailyRevenue(db)
	if err != nil {
		utils.ErrorLogger.Printf("Snapshot: reading daily revenue failed: %v", err)
	} else {
		msgs = append(msgs, Message{Event: EventDailyRevenue, Data: revenue})
	}

	return msgs
}

func broadcast(msg Message) {
	displayHub.mutex.Lock()
	defer displayHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range displayHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to client: %v", msg.Event, err)
		}
	}
}

func sendTo(conn *websocket.Conn, msg Message) {
	displayHub.mutex.Lock()
	defer displayHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		utils.ErrorLogger.Printf("Error sending %s to new client: %v", msg.Event, err)
	}
}
