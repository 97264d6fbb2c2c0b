// Command ordercli simulates a WhatsApp conversation against a running
// bot: it posts webhook payloads to /whatsapp and prints the text inside
// the TwiML reply.
package main

import (
	"bufio"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type twimlResponse struct {
	Messages []string `xml:"Message"`
}

func main() {
	apiURL := flag.String("url", "http://localhost:3000/whatsapp", "webhook URL of the running bot")
	from := flag.String("from", "whatsapp:+573001234567", "simulated sender")
	flag.Parse()

	fmt.Println("--- Chat de Prueba Local ---")
	fmt.Println("Escribe tu mensaje y presiona Enter. Escribe \"exit\" para salir.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Tú: ")
		if !scanner.Scan() {
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if strings.EqualFold(message, "exit") {
			return
		}

		reply, err := sendMessage(*apiURL, *from, message)
		if err != nil {
			log.Printf("Error al conectar con el servidor: %v", err)
			continue
		}
		fmt.Printf("\nBot: %s\n\n", reply)
	}
}

func sendMessage(apiURL, from, body string) (string, error) {
	form := url.Values{
		"From": {from},
		"Body": {body},
	}

	resp, err := http.PostForm(apiURL, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, data)
	}

	var parsed twimlResponse
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse TwiML: %w", err)
	}
	if len(parsed.Messages) == 0 {
		return "(sin respuesta)", nil
	}
	return strings.TrimSpace(parsed.Messages[0]), nil
}
