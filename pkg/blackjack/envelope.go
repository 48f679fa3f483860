package blackjack

// Envelope pairs an outbound event with its recipient.
// An empty To means the event is broadcast to every connected participant.
type Envelope struct {
	To  string
	Msg interface{}
}

func broadcast(msg interface{}) Envelope {
	return Envelope{Msg: msg}
}

func targeted(to string, msg interface{}) Envelope {
	return Envelope{To: to, Msg: msg}
}
