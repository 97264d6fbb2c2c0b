package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// User-facing texts. One reply per turn, WhatsApp-style markup.
const (
	msgGreetPrompt = "Por favor, escribe *HOLA* para iniciar."

	msgMainMenu = "¡Hola! 👋 Bienvenido a nuestro servicio de pedidos.\n\n" +
		"*1.* Hacer un pedido 🛒\n" +
		"*2.* Preguntas frecuentes ❓\n" +
		"*3.* Hablar con un asesor 🧑‍💼\n\n" +
		"Responde con el número de la opción, o escribe *FIN* para salir.\n" +
		"En cualquier momento puedes escribir *MENU* para volver aquí."

	msgInvalidMenuOption = "Opción no válida. Responde *1* para pedir, *2* para preguntas frecuentes, *3* para hablar con un asesor, o *FIN* para salir."

	msgAskName    = "¡Excelente! Para comenzar, por favor, dime tu *nombre completo*."
	msgAskAddress = "Gracias. Ahora, por favor, indícame tu *dirección de entrega*."
	msgAskPhone   = "Perfecto. Por último, tu *número de celular*."
	msgAskProduct = "¡Datos guardados! \n\nAhora, dime ¿qué *producto* estás buscando?"

	msgInvalidChoice   = "Selección no válida. Por favor, elige un número de la lista."
	msgInvalidQuantity = "Por favor, introduce una cantidad válida (un número mayor que 0)."

	msgAnotherFromListPrompt = "¿Deseas pedir otro producto de la lista anterior? Responde *SI* o *NO*."
	msgNextProduct           = "Perfecto. Escribe el nombre de otro producto que desees añadir, o escribe *FIN* para completar tu pedido."

	msgAskFaqQuestion  = "Con gusto te ayudo. ¿Qué deseas saber?"
	msgFaqNotFound     = "Lo siento, no encontré una respuesta para tu pregunta."
	msgFaqRetryPrompt  = "¿Tienes otra pregunta? Responde *SI* o *NO*."
	msgFaqAnother      = "Claro, ¿qué más deseas saber?"
	msgAdvisorMissing  = "Lo sentimos, en este momento no hay asesores disponibles. Escribe *MENU* para volver al menú principal."
	msgGoodbye         = "Entendido. ¡Hasta la próxima! 👋"
	msgEmptyOrder      = "No has añadido ningún producto a tu pedido. Escribe *HOLA* si quieres empezar uno nuevo. ¡Hasta pronto!"
	msgOrderSaveFailed = "Hubo un problema al registrar tu pedido. Por favor, inténtalo de nuevo en unos minutos."

	msgRestart    = "Lo siento, ha ocurrido un error. Por favor, escribe *HOLA* para empezar de nuevo."
	msgFatalError = "Lo siento, no pude procesar tu solicitud en este momento. Inténtalo de nuevo más tarde."
)

// formatMoney renders prices the way the catalog stores them, without
// trailing zeros.
func formatMoney(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func productNotFoundMessage(query string) string {
	return fmt.Sprintf("No encontré productos que coincidan con \"*%s*\". Por favor, intenta con otro nombre o revisa la ortografía.", query)
}

func singleMatchMessage(product models.Product) string {
	return fmt.Sprintf("Encontré: *%s* (Valor: $%s).\n\n¿Qué *cantidad* deseas pedir?", product.Name, formatMoney(product.UnitValue))
}

func chosenProductMessage(product models.Product) string {
	return fmt.Sprintf("Has elegido: *%s*. \n\n¿Qué *cantidad* deseas pedir?", product.Name)
}

func productListMessage(products []models.Product) string {
	var b strings.Builder
	b.WriteString("Encontré varias coincidencias. Por favor, elige una de la lista respondiendo con el número correspondiente:\n\n")
	for i, product := range products {
		fmt.Fprintf(&b, "*%d.* %s - $%s\n", i+1, product.Name, formatMoney(product.UnitValue))
	}
	return b.String()
}

func itemAddedMessage(item models.OrderItem, orderTotal float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Producto añadido:*\n- Nombre: %s\n- Cantidad: %d\n- Valor Unit.: $%s\n- Valor Total: $%s",
		item.ProductName, item.Quantity, formatMoney(item.UnitValue), formatMoney(item.LineValue))
	fmt.Fprintf(&b, "\n\n*Total actual del pedido: $%s*", formatMoney(orderTotal))
	return b.String()
}

func advisorHandoffMessage(advisor string) string {
	return fmt.Sprintf("¡Con gusto! Un asesor te contactará pronto. También puedes escribirle directamente: %s", advisor)
}

func orderSummaryMessage(order *models.Order) string {
	var b strings.Builder
	b.WriteString("*¡Pedido registrado con éxito!* 🎉\n\n")
	b.WriteString("*Resumen de tu pedido:*\n\n")
	b.WriteString("*Datos del Cliente:*\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", order.Customer)
	fmt.Fprintf(&b, "- Dirección: %s\n", order.Address)
	fmt.Fprintf(&b, "- Celular: %s\n\n", order.Phone)

	b.WriteString("*Productos:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (x%d) - *$%s*\n", item.ProductName, item.Quantity, formatMoney(item.LineValue))
	}

	fmt.Fprintf(&b, "\n*TOTAL DEL PEDIDO: $%s*\n\n", formatMoney(order.Total))
	b.WriteString("Gracias por tu compra. ¡Pronto nos pondremos en contacto contigo!")
	return b.String()
}
