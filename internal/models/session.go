package models

// ConversationState identifies where a user is in the scripted flow.
type ConversationState string

const (
	StateAwaitingStart           ConversationState = "AWAITING_START"
	StateAwaitingMainMenu        ConversationState = "AWAITING_MAIN_MENU_SELECTION"
	StateAwaitingName            ConversationState = "AWAITING_NAME"
	StateAwaitingAddress         ConversationState = "AWAITING_ADDRESS"
	StateAwaitingPhone           ConversationState = "AWAITING_PHONE"
	StateAwaitingProduct         ConversationState = "AWAITING_PRODUCT"
	StateAwaitingProductChoice   ConversationState = "AWAITING_PRODUCT_CHOICE"
	StateAwaitingQuantity        ConversationState = "AWAITING_QUANTITY"
	StateAwaitingAnotherFromList ConversationState = "AWAITING_ANOTHER_FROM_LIST"
	StateAwaitingFaqQuestion     ConversationState = "AWAITING_FAQ_QUESTION"
	StateAwaitingFaqRetryChoice  ConversationState = "AWAITING_FAQ_RETRY_CHOICE"
)

// Session holds the conversation state for one user. Sessions live in
// process memory only and are lost on restart.
type Session struct {
	ConversationID string            `json:"conversation_id"`
	State          ConversationState `json:"state"`
	Order          *Order            `json:"order,omitempty"`

	// Result of the last product search, kept so the user can pick from
	// the list or add another candidate from the same result set.
	TempMatches  []Product `json:"temp_matches,omitempty"`
	TempSelected *Product  `json:"temp_selected,omitempty"`
}

// ClearTemp drops the product-search scratch state.
func (s *Session) ClearTemp() {
	s.TempMatches = nil
	s.TempSelected = nil
}
