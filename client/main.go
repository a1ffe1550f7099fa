package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom  = 101
	MsgTypeJoinRoom    = 102
	MsgTypeLeaveRoom   = 103
	MsgTypeListRooms   = 104
	MsgTypeStartGame   = 201
	MsgTypeSelectWord  = 202
	MsgTypeGuess       = 204
	MsgTypeChat        = 205
	MsgTypeRestartGame = 206
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func sendJSON(c *websocket.Conn, msgID uint16, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return send(c, msgID, data)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	log.Println("Client started. Commands:")
	log.Println("  create NAME | join CODE [PASSWORD] | list | start")
	log.Println("  word WORD | guess TEXT | say TEXT | restart | leave")

	name := "tester"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			cmd, rest, _ := strings.Cut(text, " ")

			var err error
			switch cmd {
			case "create":
				roomName := rest
				if roomName == "" {
					roomName = name + "'s room"
				}
				err = sendJSON(c, MsgTypeCreateRoom, map[string]any{
					"name":       roomName,
					"playerName": name,
				})
			case "join":
				code, password, _ := strings.Cut(rest, " ")
				err = sendJSON(c, MsgTypeJoinRoom, map[string]any{
					"code":       strings.ToUpper(code),
					"password":   password,
					"playerName": name,
				})
			case "list":
				err = send(c, MsgTypeListRooms, []byte{})
			case "start":
				err = send(c, MsgTypeStartGame, []byte{})
			case "word":
				err = sendJSON(c, MsgTypeSelectWord, map[string]string{"word": rest})
			case "guess":
				err = sendJSON(c, MsgTypeGuess, map[string]string{"text": rest})
			case "say":
				err = sendJSON(c, MsgTypeChat, map[string]string{"text": rest})
			case "restart":
				err = send(c, MsgTypeRestartGame, []byte{})
			case "leave":
				err = send(c, MsgTypeLeaveRoom, []byte{})
			default:
				log.Printf("Unknown command %q", cmd)
				continue
			}
			if err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", cmd)
		}
	}
}
