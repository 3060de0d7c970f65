package domain

// TransitionRecord is one observed transition in journal form. Records carry
// raw ids; mapping to display names is the consumer's business.
type TransitionRecord struct {
	From StateID `json:"from"`
	Msg  MsgType `json:"msg"`
	To   StateID `json:"to"`
}
