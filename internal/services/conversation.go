package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// AdvisorNotifier pushes a heads-up to the human advisor when a user asks
// for one. Implemented by TwilioService; nil disables notifications.
type AdvisorNotifier interface {
	NotifyAdvisor(to, text string) error
}

// ConversationService is the per-user state machine. Each turn consumes
// one inbound message, produces exactly one reply and may advance the
// session state, mutate the order, or call the matchers and order writer.
// Replies are plain text; the channel adapters render them.
type ConversationService struct {
	sessions *SessionStore
	products *ProductMatcher
	faq      *FaqMatcher
	orders   *OrderWriter
	advisor  string
	notifier AdvisorNotifier
}

// NewConversationService wires the state machine to its collaborators.
// advisor is the contact handle offered on a handoff; empty disables the
// branch with an apology.
func NewConversationService(sessions *SessionStore, products *ProductMatcher, faq *FaqMatcher, orders *OrderWriter, advisor string, notifier AdvisorNotifier) *ConversationService {
	return &ConversationService{
		sessions: sessions,
		products: products,
		faq:      faq,
		orders:   orders,
		advisor:  advisor,
		notifier: notifier,
	}
}

// ProcessMessage runs one turn for a conversation. Anything unexpected is
// recovered here: the session is dropped and the user gets a generic
// apology with a forced restart.
func (s *ConversationService) ProcessMessage(ctx context.Context, conversationID, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Unexpected error handling message from %s: %v", conversationID, r)
			s.sessions.Delete(conversationID)
			reply = msgFatalError
		}
	}()

	input := strings.TrimSpace(text)
	command := strings.ToLower(input)

	session := s.sessions.GetOrCreate(conversationID)
	log.Printf("📱 [%s] state=%s message=%q", conversationID, session.State, input)

	// Global escape hatch: MENU works everywhere except before the first
	// greeting.
	if command == "menu" && session.State != models.StateAwaitingStart {
		session.ClearTemp()
		session.State = models.StateAwaitingMainMenu
		return msgMainMenu
	}

	switch session.State {
	case models.StateAwaitingStart:
		if command == "hola" || command == "/start" {
			session.State = models.StateAwaitingMainMenu
			return msgMainMenu
		}
		return msgGreetPrompt

	case models.StateAwaitingMainMenu:
		return s.handleMainMenu(session, command)

	case models.StateAwaitingName:
		session.Order.Customer = input
		session.State = models.StateAwaitingAddress
		return msgAskAddress

	case models.StateAwaitingAddress:
		session.Order.Address = input
		session.State = models.StateAwaitingPhone
		return msgAskPhone

	case models.StateAwaitingPhone:
		session.Order.Phone = input
		session.State = models.StateAwaitingProduct
		return msgAskProduct

	case models.StateAwaitingProduct:
		if command == "fin" {
			reply := s.finalizeOrder(ctx, session)
			s.sessions.Delete(conversationID)
			return reply
		}
		return s.handleProductSearch(ctx, session, input)

	case models.StateAwaitingProductChoice:
		choice, err := strconv.Atoi(command)
		if err != nil || choice < 1 || choice > len(session.TempMatches) {
			return msgInvalidChoice
		}
		session.TempSelected = &session.TempMatches[choice-1]
		session.State = models.StateAwaitingQuantity
		return chosenProductMessage(*session.TempSelected)

	case models.StateAwaitingQuantity:
		return s.handleQuantity(session, command)

	case models.StateAwaitingAnotherFromList:
		switch command {
		case "si", "sí":
			session.State = models.StateAwaitingProductChoice
			return productListMessage(session.TempMatches)
		case "no":
			session.ClearTemp()
			session.State = models.StateAwaitingProduct
			return msgNextProduct
		default:
			return msgAnotherFromListPrompt
		}

	case models.StateAwaitingFaqQuestion:
		answer, found := s.faq.FindAnswer(ctx, input)
		session.State = models.StateAwaitingFaqRetryChoice
		if !found {
			return msgFaqNotFound + "\n\n" + msgFaqRetryPrompt
		}
		return answer + "\n\n" + msgFaqRetryPrompt

	case models.StateAwaitingFaqRetryChoice:
		switch command {
		case "si", "sí":
			session.State = models.StateAwaitingFaqQuestion
			return msgFaqAnother
		case "no":
			session.State = models.StateAwaitingMainMenu
			return msgMainMenu
		default:
			return msgFaqRetryPrompt
		}

	default:
		// Unmapped state: drop the session and force a restart.
		s.sessions.Delete(conversationID)
		return msgRestart
	}
}

func (s *ConversationService) handleMainMenu(session *models.Session, command string) string {
	switch command {
	case "1":
		session.Order = models.NewOrder()
		session.State = models.StateAwaitingName
		return msgAskName
	case "2":
		session.State = models.StateAwaitingFaqQuestion
		return msgAskFaqQuestion
	case "3":
		s.sessions.Delete(session.ConversationID)
		if s.advisor == "" {
			return msgAdvisorMissing
		}
		s.notifyAdvisor(session.ConversationID)
		return advisorHandoffMessage(s.advisor)
	case "fin":
		s.sessions.Delete(session.ConversationID)
		return msgGoodbye
	default:
		return msgInvalidMenuOption
	}
}

func (s *ConversationService) handleProductSearch(ctx context.Context, session *models.Session, query string) string {
	matches := s.products.FindProducts(ctx, query)

	switch len(matches) {
	case 0:
		return productNotFoundMessage(query)
	case 1:
		// A single hit skips the selection step.
		session.TempMatches = matches
		session.TempSelected = &matches[0]
		session.State = models.StateAwaitingQuantity
		return singleMatchMessage(matches[0])
	default:
		session.TempMatches = matches
		session.TempSelected = nil
		session.State = models.StateAwaitingProductChoice
		return productListMessage(matches)
	}
}

func (s *ConversationService) handleQuantity(session *models.Session, command string) string {
	quantity, err := strconv.Atoi(command)
	if err != nil || quantity <= 0 {
		return msgInvalidQuantity
	}

	item := session.Order.AddItem(*session.TempSelected, quantity)
	summary := itemAddedMessage(item, session.Order.Total)

	// With more than one candidate from the last search the user may want
	// another product off the same list.
	if len(session.TempMatches) > 1 {
		session.State = models.StateAwaitingAnotherFromList
		return summary + "\n\n" + msgAnotherFromListPrompt
	}

	session.ClearTemp()
	session.State = models.StateAwaitingProduct
	return summary + "\n\n" + msgNextProduct
}

func (s *ConversationService) finalizeOrder(ctx context.Context, session *models.Session) string {
	order := session.Order
	if len(order.Items) == 0 {
		return msgEmptyOrder
	}

	if !s.orders.SaveOrder(ctx, order) {
		return msgOrderSaveFailed
	}
	return orderSummaryMessage(order)
}

func (s *ConversationService) notifyAdvisor(conversationID string) {
	if s.notifier == nil {
		return
	}

	text := fmt.Sprintf("🧑‍💼 El cliente %s solicita hablar con un asesor.", conversationID)
	if err := s.notifier.NotifyAdvisor(s.advisor, text); err != nil {
		log.Printf("⚠️  Failed to notify advisor: %v", err)
	}
}
